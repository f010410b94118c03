package usecase

import (
	"strings"
	"testing"
)

func TestTitleDeduperFirstWins(t *testing.T) {
	t.Parallel()

	d := NewTitleDeduper()

	if d.IsDuplicate("Coffee prices rise in Brazil") {
		t.Fatalf("first occurrence flagged as duplicate")
	}
	if !d.IsDuplicate("Coffee prices rise in Brazil") {
		t.Fatalf("repeat not flagged as duplicate")
	}
}

func TestTitleDeduperPrefixLength(t *testing.T) {
	t.Parallel()

	d := NewTitleDeduper()

	base := strings.Repeat("a", 30)
	if d.IsDuplicate(base + " first variant") {
		t.Fatalf("first occurrence flagged as duplicate")
	}
	if !d.IsDuplicate(base + " second variant") {
		t.Fatalf("titles sharing the 30-char prefix should collide")
	}

	// Divergence within the prefix keeps both.
	if d.IsDuplicate(strings.Repeat("b", 30) + " first variant") {
		t.Fatalf("distinct prefix flagged as duplicate")
	}
}

func TestTitleDeduperCountsRunes(t *testing.T) {
	t.Parallel()

	d := NewTitleDeduper()

	base := strings.Repeat("珈", 30)
	if d.IsDuplicate(base + "一") {
		t.Fatalf("first occurrence flagged as duplicate")
	}
	if !d.IsDuplicate(base + "二") {
		t.Fatalf("CJK titles sharing 30 runes should collide")
	}
}

func TestTitleDeduperShortTitles(t *testing.T) {
	t.Parallel()

	d := NewTitleDeduper()

	if d.IsDuplicate("short") {
		t.Fatalf("first occurrence flagged as duplicate")
	}
	if d.IsDuplicate("short but different") {
		t.Fatalf("short title must not collide with a longer one")
	}
	if !d.IsDuplicate("short") {
		t.Fatalf("exact short repeat not flagged")
	}
}

func TestTitleDeduperResetPerRun(t *testing.T) {
	t.Parallel()

	first := NewTitleDeduper()
	first.IsDuplicate("Coffee prices rise in Brazil")

	second := NewTitleDeduper()
	if second.IsDuplicate("Coffee prices rise in Brazil") {
		t.Fatalf("state leaked across runs")
	}
}
