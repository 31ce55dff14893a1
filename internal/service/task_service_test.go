package service

import (
	"errors"
	"strings"
	"testing"

	"taskhub/internal/domain"
)

func TestValidateTitle(t *testing.T) {
	cases := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{"ok", "buy milk", false},
		{"exactly max", strings.Repeat("x", domain.MaxTitleLen), false},
		{"one over max", strings.Repeat("x", domain.MaxTitleLen+1), true},
		{"empty", "", true},
		{"multibyte under max", strings.Repeat("あ", 150), false},
		{"multibyte exactly max", strings.Repeat("あ", domain.MaxTitleLen), false},
		{"multibyte one over max", strings.Repeat("あ", domain.MaxTitleLen+1), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateTitle(tc.title)
			if tc.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Fatalf("validateTitle() = %v, want ErrValidation", err)
				}
			} else if err != nil {
				t.Fatalf("validateTitle() = %v, want nil", err)
			}
		})
	}
}

func TestValidateDescription(t *testing.T) {
	long := strings.Repeat("x", domain.MaxDescriptionLen+1)
	max := strings.Repeat("x", domain.MaxDescriptionLen)

	if err := validateDescription(nil); err != nil {
		t.Fatalf("validateDescription(nil) = %v, want nil", err)
	}
	if err := validateDescription(&max); err != nil {
		t.Fatalf("validateDescription(max) = %v, want nil", err)
	}
	if err := validateDescription(&long); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("validateDescription(over max) = %v, want ErrValidation", err)
	}

	// limits count characters, not bytes
	multibyteMax := strings.Repeat("あ", domain.MaxDescriptionLen)
	if err := validateDescription(&multibyteMax); err != nil {
		t.Fatalf("validateDescription(multibyte max) = %v, want nil", err)
	}
	multibyteOver := strings.Repeat("あ", domain.MaxDescriptionLen+1)
	if err := validateDescription(&multibyteOver); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("validateDescription(multibyte over max) = %v, want ErrValidation", err)
	}
}
