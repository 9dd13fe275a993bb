package parse

import "testing"

const nbaDraftNetFixture = `
| # | Team | Player | Ht | Wt | Pos | School | Class |
| --- | --- | --- | --- | --- | --- | --- | --- |
| 1 | Dal | [Cooper Flagg](https://www.nbadraft.net/players/cooper-flagg/) | 6-9 | 205 | SF | Duke | Fr. |
| 2 | SA | [Dylan Harper](https://www.nbadraft.net/players/dylan-harper/) | 6-6 | 215 | PG | Rutgers | Fr. |
| 14 | Chi | [Noa Essengue](https://www.nbadraft.net/players/noa-essengue/) | 6-10 | 198 | PF | Ratiopharm Ulm | Intl. |
| 99 | XX | [Too Deep](https://www.nbadraft.net/players/too-deep/) | 6-5 | 190 | SG | Nowhere | Sr. |
`

func TestNBADraftNetParser(t *testing.T) {
	records := NBADraftNetParser{}.Parse(nbaDraftNetFixture)

	if len(records) != 3 {
		t.Fatalf("got %d records, want 3 (rank 99 is out of range)", len(records))
	}

	first := records[0]
	if first.Rank != 1 || first.Name != "Cooper Flagg" {
		t.Fatalf("first record = %+v", first)
	}
	if first.Slug != "cooper-flagg" {
		t.Errorf("slug = %q, want cooper-flagg", first.Slug)
	}
	if first.Position != "SF" {
		t.Errorf("position = %q, want SF", first.Position)
	}
	if first.School != "Duke" {
		t.Errorf("school = %q, want Duke", first.School)
	}
	if first.HeightDisplay != `6'9"` {
		t.Errorf("height display = %q, want 6'9\"", first.HeightDisplay)
	}
	if first.HeightInches == nil || *first.HeightInches != 81 {
		t.Errorf("height inches = %v, want 81", first.HeightInches)
	}
	if first.Weight == nil || *first.Weight != 205 {
		t.Errorf("weight = %v, want 205", first.Weight)
	}
	if first.Year != "Freshman" {
		t.Errorf("year = %q, want Freshman", first.Year)
	}

	intl := records[2]
	if intl.Rank != 14 || intl.Name != "Noa Essengue" {
		t.Fatalf("international record = %+v", intl)
	}
	if intl.Year != "International" {
		t.Errorf("year = %q, want International", intl.Year)
	}
	if intl.School != "Ratiopharm Ulm" {
		t.Errorf("school = %q, want Ratiopharm Ulm", intl.School)
	}
}

func TestNBADraftNetParser_DuplicateRankKeepsFirst(t *testing.T) {
	markdown := `
| 5 | Uta | [First Player](https://www.nbadraft.net/players/first-player/) | 6-5 | 200 | SG | Kansas | So. |
| 5 | Uta | [Second Player](https://www.nbadraft.net/players/second-player/) | 6-7 | 210 | SF | Baylor | Jr. |
`
	records := NBADraftNetParser{}.Parse(markdown)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Name != "First Player" {
		t.Errorf("kept %q, want First Player", records[0].Name)
	}
}

func TestNBADraftNetParser_RowWithoutPlayerLink(t *testing.T) {
	markdown := `
| 3 | Phi | no link here | 6-8 | 220 | PF | Arkansas | Fr. |
`
	got := NBADraftNetParser{}.Parse(markdown)
	if len(got) != 0 {
		t.Fatalf("row without player link produced %d records", len(got))
	}
}
