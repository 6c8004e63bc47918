package keys

import "testing"

func TestReservedContainsKnownBindings(t *testing.T) {
	known := []rune{'q', 'j', 'k', 'd', 'u', 's', 'w', 'e', 'o', '/', '?', 'f', 'W'}
	for _, r := range known {
		if !Reserved[r] {
			t.Errorf("expected '%c' to be reserved", r)
		}
	}
}

func TestReservedExcludesUnbound(t *testing.T) {
	unbound := []rune{'z', 'Z'}
	for _, r := range unbound {
		if Reserved[r] {
			t.Errorf("expected '%c' to NOT be reserved", r)
		}
	}
}

func TestAvailableLabelsNonEmpty(t *testing.T) {
	if len(AvailableLabels) == 0 {
		t.Fatal("AvailableLabels must not be empty")
	}
}

func TestAvailableLabelsExcludesReserved(t *testing.T) {
	for _, r := range AvailableLabels {
		if Reserved[r] {
			t.Errorf("label '%c' should not be in Reserved", r)
		}
	}
}

func TestAvailableLabelsStartsWithLowercase(t *testing.T) {
	first := AvailableLabels[0]
	if first < 'a' || first > 'z' {
		t.Errorf("expected first available label to be lowercase, got '%c'", first)
	}
}

func TestIndexToLabelSingleChar(t *testing.T) {
	for i := 0; i < len(AvailableLabels); i++ {
		label := IndexToLabel(i)
		if len(label) != 1 {
			t.Errorf("IndexToLabel(%d) = %q, expected single char", i, label)
		}
	}
}

func TestIndexToLabelTwoChar(t *testing.T) {
	label := IndexToLabel(len(AvailableLabels))
	if len(label) != 2 {
		t.Errorf("IndexToLabel(%d) = %q, expected two chars", len(AvailableLabels), label)
	}
}

func TestIndexToLabelConsistency(t *testing.T) {
	for i := 0; i < 10; i++ {
		a := IndexToLabel(i)
		b := IndexToLabel(i)
		if a != b {
			t.Errorf("IndexToLabel(%d) inconsistent: %q vs %q", i, a, b)
		}
	}
}
