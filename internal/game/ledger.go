package game

import (
	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/rules"
)

// Charge deducts amount from p. The balance may go negative; recovery is the
// caller's concern. When toBank is set the bank pool is credited.
func (gs *GameState) Charge(p *Player, amount int, toBank bool) Code {
	p.Cash -= amount
	if toBank {
		gs.Bank.Cash += amount
	}
	gs.record(rules.EventCashCharged, "charge_player", p,
		map[string]any{"amount": amount, "to_bank": toBank, "cash": p.Cash},
		gs.codes.Success)
	return gs.codes.Success
}

// Receive credits amount to p. Funds from the bank fail without side effect
// when the pool is short; funds from another player are never checked.
func (gs *GameState) Receive(p *Player, amount int, fromBank bool) Code {
	if fromBank {
		if !gs.Bank.CanPay(amount) {
			gs.record(rules.EventBankShort, "receive_player", p,
				map[string]any{"amount": amount, "bank_cash": gs.Bank.Cash, "error": ErrBankInsufficientFunds.Error()},
				gs.codes.Failure)
			return gs.codes.Failure
		}
		gs.Bank.Cash -= amount
	}
	p.Cash += amount
	gs.record(rules.EventCashReceived, "receive_player", p,
		map[string]any{"amount": amount, "from_bank": fromBank, "cash": p.Cash},
		gs.codes.Success)
	return gs.codes.Success
}

// Transfer moves amount from one player to another.
func (gs *GameState) Transfer(from, to *Player, amount int) Code {
	gs.Charge(from, amount, false)
	return gs.Receive(to, amount, false)
}

// TotalCash sums cash across the bank and every player, eliminated or not.
func (gs *GameState) TotalCash() int {
	total := gs.Bank.Cash
	for _, p := range gs.Players {
		total += p.Cash
	}
	return total
}
