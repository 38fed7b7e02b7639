package dateutil_test

import (
	"errors"
	"testing"
	"time"

	"github.com/alnah/go-nb2md/internal/dateutil"
)

func TestParseDateFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr bool
	}{
		{
			name:   "default format",
			format: "YYYY-MM-DD",
			want:   "2006-01-02",
		},
		{
			name:   "compact format",
			format: "YYYYMMDD",
			want:   "20060102",
		},
		{
			name:   "short year and single digits",
			format: "YY-M-D",
			want:   "06-1-2",
		},
		{
			name:   "literal characters preserved",
			format: "YYYY.MM.DD",
			want:   "2006.01.02",
		},
		{
			name:    "empty format",
			format:  "",
			wantErr: true,
		},
		{
			name:    "path separator rejected",
			format:  "YYYY/MM/DD",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := dateutil.ParseDateFormat(tt.format)

			if tt.wantErr {
				if !errors.Is(err, dateutil.ErrInvalidDateFormat) {
					t.Fatalf("error = %v, want ErrInvalidDateFormat", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseDateFormat(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2025, time.March, 9, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name   string
		format string
		want   string
	}{
		{"explicit tokens", "YYYY-MM-DD", "2025-03-09"},
		{"iso preset", "iso", "2025-03-09"},
		{"compact preset", "compact", "20250309"},
		{"preset name case insensitive", "ISO", "2025-03-09"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := dateutil.Format(fixed, tt.format)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestFormatTooLong(t *testing.T) {
	t.Parallel()

	long := make([]byte, dateutil.MaxDateFormatLength+1)
	for i := range long {
		long[i] = 'Y'
	}

	if _, err := dateutil.Format(time.Now(), string(long)); !errors.Is(err, dateutil.ErrInvalidDateFormat) {
		t.Fatalf("error = %v, want ErrInvalidDateFormat", err)
	}
}
