package main

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// logger writes a line per handled request to the provided writer.
func logger(out io.Writer, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// save start
		start := time.Now()

		// call next handler
		next.ServeHTTP(w, r)

		// log request
		fmt.Fprintf(out, "[%s] %s - %s\n", r.Method, r.URL.Path, time.Since(start).String())
	})
}
