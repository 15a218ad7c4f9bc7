// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package submission

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/NYTimes/gziphandler"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/findora-network/ledgercore/txs"
)

// BuildInfo is the build-string payload /version serves, formatted the way
// the original implementation's submission_api.rs does: "Build: <hash> <date>".
type BuildInfo struct {
	Hash string
	Date string
}

func (b BuildInfo) String() string { return fmt.Sprintf("Build: %s %s", b.Hash, b.Date) }

// NewRouter builds the stable-named HTTP submission surface,
// wrapped the way the teacher's HTTP-facing VMs wrap routes: gzip
// compression and permissive CORS for browser wallets, both applied
// outside the router so every route gets them uniformly.
func NewRouter(s *Server, build BuildInfo) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		writeText(w, http.StatusOK, "success")
	}).Methods(http.MethodGet)

	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		writeText(w, http.StatusOK, build.String())
	}).Methods(http.MethodGet)

	r.HandleFunc("/submit_transaction", func(w http.ResponseWriter, r *http.Request) {
		var tx txs.Transaction
		if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
			writeText(w, http.StatusBadRequest, "deserialization error: "+err.Error())
			return
		}
		handle, err := s.HandleTransaction(tx)
		if err != nil {
			writeText(w, http.StatusBadRequest, err.Error())
			return
		}
		writeText(w, http.StatusOK, string(handle))
	}).Methods(http.MethodPost)

	r.HandleFunc("/txn_status/{handle}", func(w http.ResponseWriter, r *http.Request) {
		handle := txs.Handle(mux.Vars(r)["handle"])
		status, ok := s.GetTxnStatus(handle)
		if !ok {
			writeText(w, http.StatusNotFound, "no such handle")
			return
		}
		writeJSON(w, http.StatusOK, status)
	}).Methods(http.MethodGet)

	r.HandleFunc("/force_end_block", func(w http.ResponseWriter, r *http.Request) {
		pending := s.PendingCount()
		if pending == 0 {
			writeText(w, http.StatusOK, "no pending transactions")
			return
		}
		if _, err := s.EndBlock(); err != nil {
			writeText(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeText(w, http.StatusOK, fmt.Sprintf("committed %d transactions", pending))
	}).Methods(http.MethodPost)

	registerQueryRoutes(r, s)

	corsHandler := cors.AllowAll().Handler(r)
	return gziphandler.GzipHandler(corsHandler)
}

// Serve runs the HTTP submission surface on addr until ctx-driven shutdown
// is handled by the caller, matching the teacher's preference for a plain
// net/http.Server over a bespoke listener wrapper.
func Serve(addr string, handler http.Handler, log *zap.Logger) error {
	log.Info("submission server listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, handler)
}

func writeText(w http.ResponseWriter, code int, body string) {
	w.WriteHeader(code)
	_, _ = w.Write([]byte(body))
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
