package game

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// HookName identifies a point where a rule variant can replace the default
// behavior.
type HookName string

const (
	HookCalculateRent             HookName = "calculate_rent"
	HookCalculateRailroadDues     HookName = "calculate_railroad_dues"
	HookCalculateUtilityDues      HookName = "calculate_utility_dues"
	HookCalculateTax              HookName = "calculate_tax"
	HookRollDie                   HookName = "roll_die"
	HookMovePlayerAfterDieRoll    HookName = "move_player_after_die_roll"
	HookOnPassGo                  HookName = "on_pass_go"
	HookHandleNegativeCashBalance HookName = "handle_negative_cash_balance"
	HookImprovementPossible       HookName = "improvement_possible"
	HookFreeMortgageCost          HookName = "free_mortgage_cost"
	HookAuction                   HookName = "auction"
	HookMakeTradeOffer            HookName = "make_trade_offer"
	HookAcceptTradeOffer          HookName = "accept_trade_offer"
)

const actionHookPrefix = "action."

// ActionHook names the hook run when a player lands on an action location
// configured with action.
func ActionHook(action string) HookName {
	return HookName(actionHookPrefix + action)
}

// Hook signatures. Every variant of a hook shares its family's signature.
type (
	DueFunc            func(gs *GameState, loc Location, payer *Player) (int, error)
	RollFunc           func(gs *GameState) ([]int, error)
	MoveFunc           func(gs *GameState, p *Player, steps int) error
	PassGoFunc         func(gs *GameState, p *Player, pass GoPass) error
	RecoveryFunc       func(gs *GameState, p *Player) (Code, error)
	ImprovementFunc    func(gs *GameState, p *Player, re *RealEstate, hotel bool) bool
	CostFunc           func(gs *GameState, p *Player, prop Property) int
	AuctionFunc        func(gs *GameState, startIndex int, prop Property) (Code, error)
	MakeTradeFunc      func(gs *GameState, from *Player, offer *TradeOffer) Code
	AcceptTradeFunc    func(gs *GameState, p *Player) Code
	LocationActionFunc func(gs *GameState, p *Player, loc *ActionLocation) (Code, error)
)

// Hooks is the per-game registry of rule overrides. Entries may be added,
// replaced or removed while a game is running, including from inside a hook.
type Hooks struct {
	mu       sync.RWMutex
	entries  map[HookName]any
	observer func(name HookName, installed bool)
}

// NewHooks creates an empty registry.
func NewHooks() *Hooks {
	return &Hooks{entries: make(map[HookName]any)}
}

// Observe sets a callback run after every Register and every Remove that
// found an entry. It is called without the registry lock held.
func (h *Hooks) Observe(fn func(name HookName, installed bool)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.observer = fn
}

func (h *Hooks) notify(name HookName, installed bool) {
	h.mu.RLock()
	fn := h.observer
	h.mu.RUnlock()
	if fn != nil {
		fn(name, installed)
	}
}

// Register installs or replaces the hook under name. fn must have the
// signature of name's family; plain function literals are accepted.
func (h *Hooks) Register(name HookName, fn any) error {
	want, err := hookFamily(name)
	if err != nil {
		return err
	}
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || !v.Type().ConvertibleTo(want) {
		return fmt.Errorf("%w: %q cannot take %T", ErrInvalidHook, name, fn)
	}
	if v.IsNil() {
		return fmt.Errorf("%w: %q given a nil function", ErrInvalidHook, name)
	}
	h.mu.Lock()
	h.entries[name] = v.Convert(want).Interface()
	h.mu.Unlock()
	h.notify(name, true)
	return nil
}

// Lookup returns the hook installed under name if it has type F.
func Lookup[F any](h *Hooks, name HookName) (F, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	fn, ok := h.entries[name].(F)
	return fn, ok
}

// lookupOr returns the installed hook or def.
func lookupOr[F any](h *Hooks, name HookName, def F) F {
	if fn, ok := Lookup[F](h, name); ok {
		return fn
	}
	return def
}

// Remove uninstalls name and reports whether it was present.
func (h *Hooks) Remove(name HookName) bool {
	h.mu.Lock()
	_, ok := h.entries[name]
	delete(h.entries, name)
	h.mu.Unlock()
	if ok {
		h.notify(name, false)
	}
	return ok
}

// Has reports whether name is installed.
func (h *Hooks) Has(name HookName) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.entries[name]
	return ok
}

// Names lists installed hooks in sorted order.
func (h *Hooks) Names() []HookName {
	h.mu.RLock()
	defer h.mu.RUnlock()
	names := make([]HookName, 0, len(h.entries))
	for name := range h.entries {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

var hookFamilies = map[HookName]reflect.Type{
	HookCalculateRent:             reflect.TypeOf(DueFunc(nil)),
	HookCalculateRailroadDues:     reflect.TypeOf(DueFunc(nil)),
	HookCalculateUtilityDues:      reflect.TypeOf(DueFunc(nil)),
	HookCalculateTax:              reflect.TypeOf(DueFunc(nil)),
	HookRollDie:                   reflect.TypeOf(RollFunc(nil)),
	HookMovePlayerAfterDieRoll:    reflect.TypeOf(MoveFunc(nil)),
	HookOnPassGo:                  reflect.TypeOf(PassGoFunc(nil)),
	HookHandleNegativeCashBalance: reflect.TypeOf(RecoveryFunc(nil)),
	HookImprovementPossible:       reflect.TypeOf(ImprovementFunc(nil)),
	HookFreeMortgageCost:          reflect.TypeOf(CostFunc(nil)),
	HookAuction:                   reflect.TypeOf(AuctionFunc(nil)),
	HookMakeTradeOffer:            reflect.TypeOf(MakeTradeFunc(nil)),
	HookAcceptTradeOffer:          reflect.TypeOf(AcceptTradeFunc(nil)),
}

func hookFamily(name HookName) (reflect.Type, error) {
	if t, ok := hookFamilies[name]; ok {
		return t, nil
	}
	if strings.HasPrefix(string(name), actionHookPrefix) && len(name) > len(actionHookPrefix) {
		return reflect.TypeOf(LocationActionFunc(nil)), nil
	}
	return nil, fmt.Errorf("%w: unknown hook %q", ErrInvalidHook, name)
}
