package handler

import (
	"net/http"
)

const NotFoundText = `Not Found`
const MethodNotAllowedText = `Method Not Allowed`

// mummify marks a canned response as uncacheable.
func mummify(handler http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(`cache-control`, `no-store`)
		handler(w, r)
	})
}

var NotFound = mummify(func(w http.ResponseWriter, r *http.Request) {
	http.Error(w, NotFoundText, http.StatusNotFound)
})

var MethodNotAllowed = mummify(func(w http.ResponseWriter, r *http.Request) {
	http.Error(w, MethodNotAllowedText, http.StatusMethodNotAllowed)
})
