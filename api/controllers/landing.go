package controllers

import (
	"net/http"
	"net/url"

	"github.com/rukkie/storefront/api/responses"
	"github.com/rukkie/storefront/internal/cart"
	"github.com/rukkie/storefront/internal/reconcile"
	"github.com/rukkie/storefront/pkg/logger"
)

const noticeCookie = "storefront_notice"

// PaymentReturn handles the landing URL. A plain visit reports the cart
// snapshot; a visit carrying provider return markers runs reconciliation,
// stashes the outcome message in a short-lived cookie, and redirects to the
// same URL with the markers stripped so a reload cannot run it twice.
func PaymentReturn(flow *reconcile.Flow, cartStore *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		ret := reconcile.ParseReturn(r.URL.Query())
		if !ret.Present() {
			responses.WriteSuccess(w, map[string]any{
				"cart_count": cartStore.GetCartCount(),
				"cart_total": cartStore.GetCartTotal(),
			})
			return
		}

		if logg != nil {
			ctx = logg.WithProvider(ctx, ret.Provider)
		}
		result := flow.Process(ctx, ret)
		if logg != nil {
			logg.Info(logg.WithField(ctx, "outcome", string(result.Status)), "payment.return")
		}

		if result.Message != "" {
			http.SetCookie(w, &http.Cookie{
				Name:   noticeCookie,
				Value:  url.QueryEscape(result.Message),
				Path:   "/",
				MaxAge: 60,
			})
		}

		target := r.URL.Path
		if query := reconcile.StripMarkers(r.URL.Query()).Encode(); query != "" {
			target += "?" + query
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}
