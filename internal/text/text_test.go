package text_test

import (
	"reflect"
	"testing"

	"github.com/HendryAvila/anota/internal/text"
)

// ─── Normalize ───────────────────────────────────────────────────────────────

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	folded, preserved := text.Normalize("  Nota   Comprar  LECHE \n")
	if preserved != "Nota Comprar LECHE" {
		t.Errorf("preserved = %q, want %q", preserved, "Nota Comprar LECHE")
	}
	if folded != "nota comprar leche" {
		t.Errorf("folded = %q, want %q", folded, "nota comprar leche")
	}
}

func TestNormalize_Empty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n"} {
		folded, preserved := text.Normalize(raw)
		if folded != "" || preserved != "" {
			t.Errorf("Normalize(%q) = (%q, %q), want empty", raw, folded, preserved)
		}
	}
}

// ─── Tags ────────────────────────────────────────────────────────────────────

func TestTags_ExtractsAndLowercases(t *testing.T) {
	got := text.Tags("buy milk #Errand #home #errand")
	want := []string{"errand", "home"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tags = %v, want %v", got, want)
	}
}

func TestTags_NoTags(t *testing.T) {
	if got := text.Tags("plain text without hashes"); got != nil {
		t.Errorf("Tags = %v, want nil", got)
	}
}

func TestTags_WordBoundaries(t *testing.T) {
	got := text.Tags("#uno, #dos! y #tres_4")
	want := []string{"dos", "tres_4", "uno"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tags = %v, want %v", got, want)
	}
}

func TestTags_AccentedLetters(t *testing.T) {
	got := text.Tags("lista del #súper")
	want := []string{"súper"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tags = %v, want %v", got, want)
	}
}
