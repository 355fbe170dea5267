package service

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/petegordon/mferoll-sub000/pkg/app/errors"
	apphttp "github.com/petegordon/mferoll-sub000/pkg/app/http"
	"github.com/petegordon/mferoll-sub000/pkg/bet"
)

// HTTP exposes Service over the read API
type HTTP struct {
	service Service
	logger  *zap.Logger
}

type betsResponse struct {
	Bets []*bet.Bet `json:"bets"`
}

// RegisterRoutes mounts the bet query endpoints on r
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Get("/bets/recent", apphttp.HandleError(h.recentBets))
	r.Get("/bets/player/{address}", apphttp.HandleError(h.playerBets))
	r.Get("/bets/{requestId}", apphttp.HandleError(h.getBet))
	r.Get("/stats/{address}", apphttp.HandleError(h.playerStats))
}

func (h *HTTP) getBet(w http.ResponseWriter, r *http.Request) error {
	b, err := h.service.GetBet(r.Context(), chi.URLParam(r, "requestId"))
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, b)
	return nil
}

func (h *HTTP) playerBets(w http.ResponseWriter, r *http.Request) error {
	limit, err := queryInt(r, "limit")
	if err != nil {
		return err
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		return err
	}

	bets, err := h.service.ListPlayerBets(r.Context(), chi.URLParam(r, "address"), limit, offset)
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, betsResponse{Bets: bets})
	return nil
}

func (h *HTTP) recentBets(w http.ResponseWriter, r *http.Request) error {
	limit, err := queryInt(r, "limit")
	if err != nil {
		return err
	}

	bets, err := h.service.ListRecentSettled(r.Context(), limit)
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, betsResponse{Bets: bets})
	return nil
}

func (h *HTTP) playerStats(w http.ResponseWriter, r *http.Request) error {
	stats, err := h.service.GetPlayerStats(r.Context(), chi.URLParam(r, "address"))
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, stats)
	return nil
}

// queryInt parses an optional integer query parameter; absent means 0
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.BadRequestError(err, "invalid "+name)
	}
	return v, nil
}
