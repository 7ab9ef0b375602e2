package report

import "testing"

func TestFormatFileSize(t *testing.T) {
	cases := []struct {
		bytes int64
		want  string
	}{
		{0, "0 Bytes"},
		{1, "1 Bytes"},
		{512, "512 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1048576, "1 MB"},
		{52428800, "50 MB"},
		{1073741824, "1 GB"},
		{1395864371, "1.3 GB"},
	}
	for _, tc := range cases {
		if got := FormatFileSize(tc.bytes); got != tc.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tc.bytes, got, tc.want)
		}
	}
}

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		value float64
		want  string
	}{
		{0, "$0.00"},
		{1234.5, "$1,234.50"},
		{999.994, "$999.99"},
		{1000000, "$1,000,000.00"},
		{-42.5, "-$42.50"},
	}
	for _, tc := range cases {
		if got := FormatCurrency(tc.value); got != tc.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestFormatCount(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4200, "-4,200"},
	}
	for _, tc := range cases {
		if got := FormatCount(tc.n); got != tc.want {
			t.Errorf("FormatCount(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestFormatACOS(t *testing.T) {
	if got := FormatACOS(50, 0); got != "0%" {
		t.Errorf("ACOS with zero sales = %q, want \"0%%\"", got)
	}
	if got := FormatACOS(50, 200); got != "25.0%" {
		t.Errorf("ACOS 50/200 = %q, want \"25.0%%\"", got)
	}
	if got := FormatACOS(0, 100); got != "0.0%" {
		t.Errorf("ACOS 0/100 = %q, want \"0.0%%\"", got)
	}
}
