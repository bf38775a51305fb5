package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/vraelian/experimental-sub000/internal/finance"
	"github.com/vraelian/experimental-sub000/internal/game"
	"github.com/vraelian/experimental-sub000/internal/httpmw"
	"github.com/vraelian/experimental-sub000/internal/save"
	"github.com/vraelian/experimental-sub000/internal/telemetry"
)

const autosaveSlot = "autosave"

// App is the HTTP facade over one engine. The engine itself is single
// threaded; the app serializes every command behind a mutex and fans the
// resulting notifications out to websocket subscribers.
type App struct {
	mu     sync.Mutex
	engine *game.Engine
	store  save.Store
	hub    *Hub
	logger *log.Logger
}

type Options struct {
	Engine *game.Engine
	Store  save.Store
	Logger *log.Logger
}

func NewApp(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &App{
		engine: opts.Engine,
		store:  opts.Store,
		hub:    NewHub(logger),
		logger: logger,
	}
}

// Run starts the notification hub; call once before serving.
func (a *App) Run() { go a.hub.Run() }

// NewHandler wires every route behind the request-id, recover and access
// log middleware.
func (a *App) NewHandler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	mux.HandleFunc("/api/state", a.handleState)
	mux.HandleFunc("/api/game/new", a.handleNewGame)
	mux.HandleFunc("/api/travel", a.handleTravel)
	mux.HandleFunc("/api/travel/resume", a.handleResume)
	mux.HandleFunc("/api/choice", a.handleChoice)
	mux.HandleFunc("/api/buy", a.handleBuy)
	mux.HandleFunc("/api/sell", a.handleSell)
	mux.HandleFunc("/api/debt/payoff", a.handlePayOff)
	mux.HandleFunc("/api/loan", a.handleLoan)
	mux.HandleFunc("/api/intel", a.handleIntel)
	mux.HandleFunc("/api/ships/buy", a.handleBuyShip)
	mux.HandleFunc("/api/ships/sell", a.handleSellShip)
	mux.HandleFunc("/api/ships/select", a.handleSelectShip)
	mux.HandleFunc("/api/refuel", a.handleRefuel)
	mux.HandleFunc("/api/repair", a.handleRepair)
	mux.HandleFunc("/api/days", a.handleAdvanceDays)
	mux.HandleFunc("/api/notices", a.handleNotices)
	mux.HandleFunc("/api/stats", a.handleStats)
	mux.HandleFunc("/api/saves", a.handleSaves)
	mux.HandleFunc("/api/saves/write", a.handleSaveWrite)
	mux.HandleFunc("/api/saves/load", a.handleSaveLoad)
	mux.HandleFunc("/ws", a.hub.ServeWS)

	return httpmw.Chain(mux,
		httpmw.WithRequestID,
		httpmw.WithRecover(a.logger),
		httpmw.WithAccessLog(a.logger),
	)
}

// commandResponse is the envelope every mutating endpoint returns: the
// command's own result, the fresh snapshot, and the notifications the
// command produced.
type commandResponse struct {
	Result  any                `json:"result,omitempty"`
	State   game.Snapshot      `json:"state"`
	Notices []telemetry.Notice `json:"notices"`
}

// command runs fn under the engine lock and finishes the envelope: drain
// notices, broadcast them, autosave, snapshot.
func (a *App) command(w http.ResponseWriter, fn func() (any, error)) {
	a.mu.Lock()
	defer a.mu.Unlock()

	result, err := fn()
	if err != nil {
		writeErr(w, statusOf(err), err.Error())
		return
	}

	notices := a.engine.DrainNotices()
	for _, n := range notices {
		a.hub.BroadcastNotice(n)
	}
	snap := a.engine.Snapshot()
	if a.store != nil && a.engine.Started() {
		if err := a.store.Save(autosaveSlot, snap); err != nil {
			a.logger.Printf(`{"level":"error","msg":"autosave_failed","error":%q}`, err.Error())
		}
	}
	writeJSON(w, http.StatusOK, commandResponse{Result: result, State: snap, Notices: notices})
}

func (a *App) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.engine.Started() {
		writeErr(w, http.StatusNotFound, "no game in progress")
		return
	}
	writeJSON(w, http.StatusOK, commandResponse{State: a.engine.Snapshot()})
}

func (a *App) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodePost(w, r, &req) {
		return
	}
	if req.Name == "" {
		req.Name = "Trader"
	}
	a.command(w, func() (any, error) {
		a.engine.NewGame(req.Name)
		return nil, nil
	})
}

func (a *App) handleTravel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DestinationID string `json:"destination_id"`
	}
	if !decodePost(w, r, &req) {
		return
	}
	a.command(w, func() (any, error) { return a.engine.TravelTo(req.DestinationID) })
}

func (a *App) handleResume(w http.ResponseWriter, r *http.Request) {
	if !decodePost(w, r, &struct{}{}) {
		return
	}
	a.command(w, func() (any, error) { return a.engine.ResumeTravel() })
}

func (a *App) handleChoice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EventID     string `json:"event_id"`
		ChoiceIndex int    `json:"choice_index"`
	}
	if !decodePost(w, r, &req) {
		return
	}
	a.command(w, func() (any, error) { return a.engine.ResolveChoice(req.EventID, req.ChoiceIndex) })
}

func (a *App) handleBuy(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CommodityID string `json:"commodity_id"`
		Qty         int    `json:"qty"`
	}
	if !decodePost(w, r, &req) {
		return
	}
	a.command(w, func() (any, error) { return a.engine.Buy(req.CommodityID, req.Qty) })
}

func (a *App) handleSell(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CommodityID string `json:"commodity_id"`
		Qty         int    `json:"qty"`
	}
	if !decodePost(w, r, &req) {
		return
	}
	a.command(w, func() (any, error) { return a.engine.Sell(req.CommodityID, req.Qty) })
}

func (a *App) handlePayOff(w http.ResponseWriter, r *http.Request) {
	if !decodePost(w, r, &struct{}{}) {
		return
	}
	a.command(w, func() (any, error) { return nil, a.engine.PayOffDebt() })
}

func (a *App) handleLoan(w http.ResponseWriter, r *http.Request) {
	var req finance.LoanOffer
	if !decodePost(w, r, &req) {
		return
	}
	a.command(w, func() (any, error) { return nil, a.engine.TakeLoan(req) })
}

func (a *App) handleIntel(w http.ResponseWriter, r *http.Request) {
	if !decodePost(w, r, &struct{}{}) {
		return
	}
	a.command(w, func() (any, error) { return a.engine.PurchaseIntel() })
}

func (a *App) handleBuyShip(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SpecID string `json:"spec_id"`
	}
	if !decodePost(w, r, &req) {
		return
	}
	a.command(w, func() (any, error) { return a.engine.BuyShip(req.SpecID) })
}

func (a *App) handleSellShip(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShipID string `json:"ship_id"`
	}
	if !decodePost(w, r, &req) {
		return
	}
	a.command(w, func() (any, error) { return nil, a.engine.SellShip(req.ShipID) })
}

func (a *App) handleSelectShip(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShipID string `json:"ship_id"`
	}
	if !decodePost(w, r, &req) {
		return
	}
	a.command(w, func() (any, error) { return nil, a.engine.SelectShip(req.ShipID) })
}

func (a *App) handleRefuel(w http.ResponseWriter, r *http.Request) {
	if !decodePost(w, r, &struct{}{}) {
		return
	}
	a.command(w, func() (any, error) { return nil, a.engine.RefuelTick() })
}

func (a *App) handleRepair(w http.ResponseWriter, r *http.Request) {
	if !decodePost(w, r, &struct{}{}) {
		return
	}
	a.command(w, func() (any, error) { return nil, a.engine.RepairTick() })
}

// handleAdvanceDays is the debug/testing hook: push the clock without
// traveling.
func (a *App) handleAdvanceDays(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Days int `json:"days"`
	}
	if !decodePost(w, r, &req) {
		return
	}
	if req.Days <= 0 || req.Days > 3650 {
		writeErr(w, http.StatusBadRequest, "days must be between 1 and 3650")
		return
	}
	a.command(w, func() (any, error) {
		return nil, a.engine.AdvanceClock(req.Days)
	})
}

func (a *App) handleNotices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	since := 0
	if v := r.URL.Query().Get("since"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "since must be a day number")
			return
		}
		since = n
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"notices": a.engine.Notices.Since(since, nil),
	})
}

func (a *App) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"counts": telemetry.Stats(a.engine.Notices.Since(0, nil)),
	})
}

func (a *App) handleSaves(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if a.store == nil {
		writeErr(w, http.StatusNotFound, "persistence is not configured")
		return
	}
	slots, err := a.store.List()
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"slots": slots})
}

func (a *App) handleSaveWrite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Slot string `json:"slot"`
	}
	if !decodePost(w, r, &req) {
		return
	}
	if req.Slot == "" || a.store == nil {
		writeErr(w, http.StatusBadRequest, "slot required")
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.engine.Started() {
		writeErr(w, http.StatusConflict, "no game in progress")
		return
	}
	if err := a.store.Save(req.Slot, a.engine.Snapshot()); err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"slot": req.Slot})
}

func (a *App) handleSaveLoad(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Slot string `json:"slot"`
	}
	if !decodePost(w, r, &req) {
		return
	}
	if req.Slot == "" || a.store == nil {
		writeErr(w, http.StatusBadRequest, "slot required")
		return
	}
	a.command(w, func() (any, error) {
		snap, err := a.store.Load(req.Slot)
		if err != nil {
			return nil, err
		}
		return nil, a.engine.Restore(snap)
	})
}

// statusOf maps the engine's typed failures onto HTTP codes. Everything the
// player can recover from is a 4xx; only genuine faults are 500s.
func statusOf(err error) int {
	switch {
	case errors.Is(err, game.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, game.ErrInsufficientFuel),
		errors.Is(err, game.ErrFuelCapacityExceeded),
		errors.Is(err, game.ErrCargoHoldFull),
		errors.Is(err, game.ErrMarketSoldOut),
		errors.Is(err, game.ErrLimitedStock),
		errors.Is(err, game.ErrLoanUnavailable),
		errors.Is(err, game.ErrShipSaleBlocked):
		return http.StatusConflict
	case errors.Is(err, game.ErrInvalidCommand):
		return http.StatusBadRequest
	case errors.Is(err, save.ErrNoSave):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func decodePost(w http.ResponseWriter, r *http.Request, out any) bool {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}
