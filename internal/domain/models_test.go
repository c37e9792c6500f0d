package domain

import "testing"

func TestLocalizedFallbackChain(t *testing.T) {
	both := LocalizedText{TR: "kutu", EN: "can"}
	trOnly := LocalizedText{TR: "kutu"}
	enOnly := LocalizedText{EN: "can"}
	neither := LocalizedText{}

	cases := []struct {
		name string
		text LocalizedText
		loc  Locale
		want string
	}{
		{"en requested, en present", both, LocaleEN, "can"},
		{"tr requested, tr present", both, LocaleTR, "kutu"},
		{"en requested, only tr", trOnly, LocaleEN, "kutu"},
		{"tr requested, only en", enOnly, LocaleTR, "can"},
		{"nothing present", neither, LocaleEN, ""},
	}
	for _, tc := range cases {
		if got := tc.text.Localized(tc.loc); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestLocalizedBlocksNeverNil(t *testing.T) {
	var b LocalizedBlocks
	if got := b.Localized(LocaleEN); got == nil {
		t.Fatal("empty blocks resolved to nil")
	}
}

func TestCertificateActiveOn(t *testing.T) {
	today := "2026-09-01"
	cases := []struct {
		expiry string
		want   bool
	}{
		{"", true},
		{"2026-09-01", true},
		{"2027-01-01", true},
		{"2026-08-31", false},
	}
	for _, tc := range cases {
		c := Certificate{ExpiryDate: tc.expiry}
		if got := c.ActiveOn(today); got != tc.want {
			t.Errorf("expiry %q: ActiveOn = %v, want %v", tc.expiry, got, tc.want)
		}
	}
}

func TestSearchHitLabelAndPath(t *testing.T) {
	family := SearchHit{
		Doc:   Doc{Type: "productFamily"},
		Title: LocalizedText{TR: "Yuvarlak Kutular", EN: "Round Cans"},
		Slug:  Slug{Current: "round-cans"},
	}
	if got := family.Label(LocaleEN); got != "Round Cans" {
		t.Errorf("family label = %q", got)
	}
	if got := family.Path(); got != "/products/round-cans" {
		t.Errorf("family path = %q", got)
	}

	sector := SearchHit{
		Doc:        Doc{Type: "sectorSolution"},
		SectorName: LocalizedText{TR: "Gıda"},
		Slug:       Slug{Current: "food-beverage"},
	}
	if got := sector.Label(LocaleEN); got != "Gıda" {
		t.Errorf("sector label = %q", got)
	}
	if got := sector.Path(); got != "/sectors/food-beverage" {
		t.Errorf("sector path = %q", got)
	}
}
