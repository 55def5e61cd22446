package httpapi

import (
	"net/http"
	"strings"
)

type versusProbabilityDTO struct {
	Mode        string `json:"mode"`
	WhiteWinPct int    `json:"whiteWinPct"`
	BlackWinPct int    `json:"blackWinPct"`
}

type versusDTO struct {
	White         playerSummaryDTO       `json:"white"`
	Black         playerSummaryDTO       `json:"black"`
	Probabilities []versusProbabilityDTO `json:"probabilities"`
}

func (h *Handler) GetVersus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetVersus")
	defer span.End()

	query := r.URL.Query()
	white := strings.TrimSpace(query.Get("white"))
	black := strings.TrimSpace(query.Get("black"))

	versus, err := h.versusService.Compare(ctx, white, black)
	if err != nil {
		h.logger.WarnContext(ctx, "versus comparison failed", "white", white, "black", black, "error", err)
		writeError(ctx, w, err)
		return
	}

	probabilities := make([]versusProbabilityDTO, 0, len(versus.Probabilities))
	for _, p := range versus.Probabilities {
		probabilities = append(probabilities, versusProbabilityDTO{
			Mode:        p.Mode,
			WhiteWinPct: p.WhiteWinPct,
			BlackWinPct: p.BlackWinPct,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, versusDTO{
		White:         playerSummaryToDTO(ctx, versus.White),
		Black:         playerSummaryToDTO(ctx, versus.Black),
		Probabilities: probabilities,
	})
}
