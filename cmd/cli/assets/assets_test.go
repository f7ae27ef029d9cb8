package assets

import "testing"

func TestListQuery(t *testing.T) {
	tests := []struct {
		search, status, typ string
		want                string
	}{
		{"", "", "", ""},
		{"dell", "", "", "?search=dell"},
		{"", "active", "", "?status=active"},
		{"", "", "laptop", "?type=laptop"},
		{"dell", "active", "", "?search=dell&status=active"},
	}
	for _, tc := range tests {
		if got := listQuery(tc.search, tc.status, tc.typ); got != tc.want {
			t.Errorf("listQuery(%q, %q, %q) = %q, want %q", tc.search, tc.status, tc.typ, got, tc.want)
		}
	}
}

func TestAssetRows(t *testing.T) {
	rows := assetRows([]asset{
		{ID: 1, Name: "web-01", Type: "server", SerialNumber: "SN-1", Status: "active", Location: "DC1", AssignedTo: "ops"},
	})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0][0] != 1 || rows[0][1] != "web-01" || rows[0][4] != "active" {
		t.Errorf("unexpected row: %+v", rows[0])
	}
}
