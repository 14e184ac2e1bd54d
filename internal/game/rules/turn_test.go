package rules

import "testing"

func TestTurnManagerSequence(t *testing.T) {
	tm := NewTurnManager("Alice")

	expected := []Phase{PhasePreRoll, PhaseRoll, PhasePostRoll, PhaseOutOfTurn}

	for i, exp := range expected {
		if tm.CurrentPhase() != exp {
			t.Fatalf("step %d: expected phase %s, got %s", i, exp, tm.CurrentPhase())
		}
		if i < len(expected)-1 {
			tm.AdvancePhase("")
		}
	}
}

func TestTurnManagerAdvanceWrapsTurn(t *testing.T) {
	tm := NewTurnManager("Alice")

	for i := 0; i < 3; i++ {
		tm.AdvancePhase("")
		if tm.TurnNumber() != 1 {
			t.Fatalf("expected to remain on turn 1, got turn %d at phase %d", tm.TurnNumber(), i)
		}
		if tm.ActivePlayer() != "Alice" {
			t.Fatalf("expected active player to remain Alice during turn, got %s", tm.ActivePlayer())
		}
	}

	tm.SetActing("Carol")
	if tm.ActingPlayer() != "Carol" {
		t.Fatalf("expected acting player Carol, got %s", tm.ActingPlayer())
	}

	phase := tm.AdvancePhase("Bob")
	if tm.TurnNumber() != 2 {
		t.Fatalf("expected turn number 2 after wrap, got %d", tm.TurnNumber())
	}
	if tm.ActivePlayer() != "Bob" {
		t.Fatalf("expected active player Bob after wrap, got %s", tm.ActivePlayer())
	}
	if tm.ActingPlayer() != "Bob" {
		t.Fatalf("expected acting player to reset to Bob, got %s", tm.ActingPlayer())
	}
	if phase != PhasePreRoll {
		t.Fatalf("expected new turn to start at PRE_ROLL, got %s", phase)
	}
}

func TestTurnManagerEndTurnFromMidTurn(t *testing.T) {
	tm := NewTurnManager("Alice")
	tm.AdvancePhase("")

	tm.EndTurn("Bob")
	if tm.TurnNumber() != 2 || tm.ActivePlayer() != "Bob" || tm.CurrentPhase() != PhasePreRoll {
		t.Fatalf("expected turn 2 Bob PRE_ROLL, got %d %s %s", tm.TurnNumber(), tm.ActivePlayer(), tm.CurrentPhase())
	}
}

func TestTurnManagerRewind(t *testing.T) {
	tm := NewTurnManager("Alice")
	tm.AdvancePhase("")
	tm.AdvancePhase("")

	tm.Rewind(PhaseRoll)
	if tm.CurrentPhase() != PhaseRoll || tm.TurnNumber() != 1 {
		t.Fatalf("expected turn 1 ROLL after rewind, got %d %s", tm.TurnNumber(), tm.CurrentPhase())
	}

	tm.Rewind(PhaseOutOfTurn)
	if tm.CurrentPhase() != PhaseRoll {
		t.Fatalf("rewind must not move forward, got %s", tm.CurrentPhase())
	}
}
