package enums

import "testing"

func TestParseItemType(t *testing.T) {
	got, err := ParseItemType(" Door ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != ItemTypeDoor {
		t.Fatalf("expected door got %s", got)
	}
	if _, err := ParseItemType("hinge"); err == nil {
		t.Fatal("expected error for unknown item type")
	}
	if ItemTypeOther.HasOverrides() {
		t.Fatal("other items carry no overrides")
	}
}

func TestParseAdjustmentTypeIsCaseInsensitive(t *testing.T) {
	got, err := ParseAdjustmentType("percent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != AdjustmentTypePercent {
		t.Fatalf("expected PERCENT got %s", got)
	}
	if AdjustmentType("flat").IsValid() {
		t.Fatal("expected flat to be invalid")
	}
}
