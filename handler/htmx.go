package handler

import "net/http"

// htmx header constants
const (
	// Request headers
	HXRequest        = "HX-Request"
	HXBoosted        = "HX-Boosted"
	HXHistoryRestore = "HX-History-Restore-Request"
	HXTarget         = "HX-Target"
	HXTrigger        = "HX-Trigger"
	HXCurrentURL     = "HX-Current-URL"

	// Response headers
	HXReswap   = "HX-Reswap"
	HXRetarget = "HX-Retarget"
)

// IsHTMX checks if the request is an htmx request.
// History restore requests expect a full page and are not treated as htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HXRequest) == "true" && r.Header.Get(HXHistoryRestore) != "true"
}

// IsHTMXBoosted checks if the request is an htmx boosted request
func IsHTMXBoosted(r *http.Request) bool {
	return r.Header.Get(HXBoosted) == "true"
}

// HTMXTarget returns the id of the target element if it exists
func HTMXTarget(r *http.Request) string {
	return r.Header.Get(HXTarget)
}

// HTMXTrigger returns the id of the triggered element if it exists
func HTMXTrigger(r *http.Request) string {
	return r.Header.Get(HXTrigger)
}

// Retarget makes htmx swap the response into selector using swap
// (e.g. "afterbegin") instead of the element that issued the request.
func Retarget(w http.ResponseWriter, selector, swap string) {
	w.Header().Set(HXRetarget, selector)
	if swap != "" {
		w.Header().Set(HXReswap, swap)
	}
}
