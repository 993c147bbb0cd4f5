package matcher

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSeasonFolderNames(t *testing.T) {
	tests := []struct {
		title      string
		wantNames  []string
		wantStatus SeasonStatus
	}{
		{"Specials", []string{"Specials", "Season 00", "Season 0"}, SeasonMatched},
		{"season 00", []string{"Specials", "Season 00", "Season 0"}, SeasonMatched},
		{"SEASON 0", []string{"Specials", "Season 00", "Season 0"}, SeasonMatched},
		{"Season 1", []string{"Season 1", "Season 01"}, SeasonMatched},
		{"season   03", []string{"Season 3", "Season 03"}, SeasonMatched},
		{"Season 12", []string{"Season 12"}, SeasonMatched},
		{"Season 2 (Director's Cut)", []string{"Season 2", "Season 02"}, SeasonMatched},
		{"All episodes", nil, SeasonIgnored},
		{"Miniseries", nil, SeasonNonStandard},
		{"The Season 1", nil, SeasonNonStandard},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			names, status := SeasonFolderNames(tt.title)
			if status != tt.wantStatus {
				t.Fatalf("status = %v, want %v", status, tt.wantStatus)
			}
			if diff := cmp.Diff(tt.wantNames, names); diff != "" {
				t.Fatalf("names mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveSeasonFolder(t *testing.T) {
	folders := []string{"Extras", "season 01", "Season 1", "Season 00"}

	tests := []struct {
		title      string
		want       string
		wantStatus SeasonStatus
	}{
		{"Season 1", "season 01", SeasonMatched},
		{"Specials", "Season 00", SeasonMatched},
		{"Season 2", "", SeasonNoFolder},
		{"All Episodes", "", SeasonIgnored},
		{"Bonus", "", SeasonNonStandard},
	}
	for _, tt := range tests {
		got, status := ResolveSeasonFolder(tt.title, folders)
		if got != tt.want || status != tt.wantStatus {
			t.Errorf("ResolveSeasonFolder(%q) = (%q, %v), want (%q, %v)", tt.title, got, status, tt.want, tt.wantStatus)
		}
	}
}

func TestResolveSeasonFolderEmptyListing(t *testing.T) {
	if got, status := ResolveSeasonFolder("Season 1", nil); got != "" || status != SeasonNoFolder {
		t.Fatalf("unexpected result (%q, %v)", got, status)
	}
}
