package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ewenguilhot8-netizen/chess-tracker/external/clashroyale"
)

// GetClashRoyalePlayer proxies a player lookup to the Clash Royale API.
// The upstream body is relayed verbatim so the dashboard sees exactly
// what the upstream returns; only the 404 case is rewritten into the
// dashboard's own error shape.
func (h *Handler) GetClashRoyalePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetClashRoyalePlayer")
	defer span.End()

	tag := strings.TrimSpace(r.URL.Query().Get("tag"))
	if tag == "" {
		writeProxyError(ctx, w, http.StatusBadRequest, "Missing player tag")
		return
	}

	result, err := h.clashRoyale.FetchPlayer(ctx, tag)
	if err != nil {
		if errors.Is(err, clashroyale.ErrNotConfigured) {
			h.logger.ErrorContext(ctx, "clash royale token is not configured")
			writeProxyError(ctx, w, http.StatusInternalServerError, "Clash Royale API is not configured")
			return
		}
		h.logger.WarnContext(ctx, "clash royale player fetch failed", "tag", tag, "error", err)
		writeProxyError(ctx, w, http.StatusServiceUnavailable, "Clash Royale API is unavailable")
		return
	}

	if result.Status == http.StatusNotFound {
		writeProxyError(ctx, w, http.StatusNotFound, "Player Not Found")
		return
	}

	writeRaw(ctx, w, result.Status, result.Body)
}
