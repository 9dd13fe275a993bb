package parse

import "testing"

const tankathonFixture = `
[![logo](https://www.tankathon.com/logo.png)](https://www.tankathon.com/)

1

[Cooper Flagg\

SF \| Duke](https://www.tankathon.com/players/cooper-flagg)

6'9"

205 lbs

Freshman

18.3 yrs

2

[Dylan Harper\

PG \| Rutgers](https://www.tankathon.com/players/dylan-harper)

6'6"

215 lbs

Freshman

3

[Ace Bailey\

SF \| Rutgers](https://www.tankathon.com/players/ace-bailey)
`

func TestTankathonParser(t *testing.T) {
	records := TankathonParser{}.Parse(tankathonFixture)

	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	first := records[0]
	if first.Rank != 1 {
		t.Errorf("rank = %d, want 1", first.Rank)
	}
	if first.Name != "Cooper Flagg" {
		t.Errorf("name = %q, want Cooper Flagg", first.Name)
	}
	if first.Position != "SF" {
		t.Errorf("position = %q, want SF", first.Position)
	}
	if first.School != "Duke" {
		t.Errorf("school = %q, want Duke", first.School)
	}
	if first.Slug != "cooper-flagg" {
		t.Errorf("slug = %q, want cooper-flagg", first.Slug)
	}
	if first.HeightInches == nil || *first.HeightInches != 81 {
		t.Errorf("height inches = %v, want 81", first.HeightInches)
	}
	if first.HeightDisplay != "6'9" {
		t.Errorf("height display = %q, want 6'9", first.HeightDisplay)
	}
	if first.Weight == nil || *first.Weight != 205 {
		t.Errorf("weight = %v, want 205", first.Weight)
	}
	if first.Year != "Freshman" {
		t.Errorf("year = %q, want Freshman", first.Year)
	}
	if first.Age == nil || *first.Age != 18.3 {
		t.Errorf("age = %v, want 18.3", first.Age)
	}
}

func TestTankathonParser_MissingBioFields(t *testing.T) {
	records := TankathonParser{}.Parse(tankathonFixture)

	third := records[2]
	if third.Rank != 3 || third.Name != "Ace Bailey" {
		t.Fatalf("third record = %+v", third)
	}
	if third.HeightInches != nil || third.Weight != nil || third.Age != nil {
		t.Errorf("bio fields should stay nil when absent: %+v", third)
	}
	if third.Year != "Unknown" {
		t.Errorf("year = %q, want Unknown", third.Year)
	}
}

func TestTankathonParser_ForwardOnlyCursor(t *testing.T) {
	// The jersey number 0 and age digits inside a block must not rewind or
	// advance the pick cursor.
	markdown := `
1

[Cooper Flagg\

SF \| Duke](https://www.tankathon.com/players/cooper-flagg)

0

2

[Dylan Harper\

PG \| Rutgers](https://www.tankathon.com/players/dylan-harper)
`
	records := TankathonParser{}.Parse(markdown)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Rank != 1 || records[1].Rank != 2 {
		t.Fatalf("ranks = %d, %d, want 1, 2", records[0].Rank, records[1].Rank)
	}
}

func TestTankathonParser_Empty(t *testing.T) {
	got := TankathonParser{}.Parse("")
	if len(got) != 0 {
		t.Fatalf("empty markdown produced %d records", len(got))
	}
}

func TestTankathonParser_SlugFallback(t *testing.T) {
	// A name line with no following player link still yields a record with a
	// slug derived from the name.
	markdown := `
1

[Jalen Smith Jr.\
`
	records := TankathonParser{}.Parse(markdown)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Slug != "jalen-smith-jr" {
		t.Errorf("slug = %q, want jalen-smith-jr", records[0].Slug)
	}
}
