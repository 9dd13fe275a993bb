package parse

import "testing"

const draftRoomFixture = `
| Pick | Team | Player | Profile |
| --- | --- | --- | --- |
| **1** | BKN | [Cooper Flagg](https://www.nbadraftroom.com/p/cooper-flagg) | SF - Duke - HT: 6-9 - WT: 205 - Fr. |
| **2** | UTA | [Dylan Harper](https://www.nbadraftroom.com/p/dylan-harper) | PG – Rutgers – HT: 6-6 – WT: 215 – Fr. |
| **14** | SAS | [Noa Essengue](https://www.nbadraftroom.com/p/noa-essengue) | PF - Ratiopharm Ulm - HT: 6-10 - WT: 198 - Int. |
| 75 |  | **Deep Sleeper** | SG - Nowhere State - HT: 6-4 - WT: 185 - Sr. |
`

func TestDraftRoomParser(t *testing.T) {
	records := DraftRoomParser{}.Parse(draftRoomFixture)

	if len(records) != 4 {
		t.Fatalf("got %d records, want 4", len(records))
	}

	first := records[0]
	if first.Rank != 1 || first.Name != "Cooper Flagg" {
		t.Fatalf("first record = %+v", first)
	}
	if first.Position != "SF" {
		t.Errorf("position = %q, want SF", first.Position)
	}
	if first.School != "Duke" {
		t.Errorf("school = %q, want Duke", first.School)
	}
	if first.HeightInches == nil || *first.HeightInches != 81 {
		t.Errorf("height inches = %v, want 81", first.HeightInches)
	}
	if first.HeightDisplay != `6'9"` {
		t.Errorf("height display = %q, want 6'9\"", first.HeightDisplay)
	}
	if first.Weight == nil || *first.Weight != 205 {
		t.Errorf("weight = %v, want 205", first.Weight)
	}
	if first.Year != "Freshman" {
		t.Errorf("year = %q, want Freshman", first.Year)
	}
	if first.Slug != "cooper-flagg" {
		t.Errorf("slug = %q, want cooper-flagg", first.Slug)
	}
}

func TestDraftRoomParser_PlayerColumnNotTeamColumn(t *testing.T) {
	records := DraftRoomParser{}.Parse(draftRoomFixture)

	for _, rec := range records {
		if rec.Name == "BKN" || rec.Name == "UTA" || rec.Name == "SAS" {
			t.Fatalf("team abbreviation parsed as player name: %+v", rec)
		}
	}
}

func TestDraftRoomParser_EnDashBio(t *testing.T) {
	records := DraftRoomParser{}.Parse(draftRoomFixture)

	second := records[1]
	if second.Name != "Dylan Harper" {
		t.Fatalf("second record = %+v", second)
	}
	if second.School != "Rutgers" {
		t.Errorf("school = %q, want Rutgers", second.School)
	}
	if second.Weight == nil || *second.Weight != 215 {
		t.Errorf("weight = %v, want 215", second.Weight)
	}
}

func TestDraftRoomParser_InternationalClass(t *testing.T) {
	records := DraftRoomParser{}.Parse(draftRoomFixture)

	intl := records[2]
	if intl.Name != "Noa Essengue" {
		t.Fatalf("international record = %+v", intl)
	}
	if intl.Year != "International" {
		t.Errorf("year = %q, want International", intl.Year)
	}
	if intl.School != "Ratiopharm Ulm" {
		t.Errorf("school = %q, want Ratiopharm Ulm", intl.School)
	}
}

func TestDraftRoomParser_KeepsExtendedBoardWithEmptyTeamCell(t *testing.T) {
	records := DraftRoomParser{}.Parse(draftRoomFixture)

	deep := records[3]
	if deep.Rank != 75 {
		t.Fatalf("rank = %d, want 75", deep.Rank)
	}
	if deep.Name != "Deep Sleeper" {
		t.Errorf("unlinked name = %q, want Deep Sleeper", deep.Name)
	}
	if deep.School != "Nowhere State" {
		t.Errorf("school = %q, want Nowhere State", deep.School)
	}
}

func TestDraftRoomParser_SkipsNonDataRows(t *testing.T) {
	markdown := `
| Pick | Team | Player | Profile |
| --- | --- | --- | --- |
plain prose line
| not | a | pick | row |
| **3** | BOS | [X](https://www.nbadraftroom.com/p/x) | PG - Duke |
`
	got := DraftRoomParser{}.Parse(markdown)
	if len(got) != 0 {
		t.Fatalf("non-data rows produced %d records", len(got))
	}
}
