// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package submission

import (
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/mr-tron/base58"

	"github.com/findora-network/ledgercore/crypto"
	"github.com/findora-network/ledgercore/ids"
)

// registerQueryRoutes wires the read-only HTTP query surface: balance,
// delegation info, created assets, abar memo/proof, owned utxos/abars,
// nullifier presence. Every handler reads through Server's LedgerStore and
// ApiCache, never the in-flight BlockBuilder.
func registerQueryRoutes(r *mux.Router, s *Server) {
	r.HandleFunc("/utxo/{sid}", func(w http.ResponseWriter, r *http.Request) {
		sid, err := parseTxoSID(mux.Vars(r)["sid"])
		if err != nil {
			writeText(w, http.StatusBadRequest, err.Error())
			return
		}
		out, ok := s.store.GetUTXO(sid)
		if !ok {
			writeText(w, http.StatusNotFound, "no such utxo")
			return
		}
		writeJSON(w, http.StatusOK, out)
	}).Methods(http.MethodGet)

	r.HandleFunc("/balance/{address}", func(w http.ResponseWriter, r *http.Request) {
		if s.cache == nil {
			writeText(w, http.StatusServiceUnavailable, "cache not wired")
			return
		}
		address := []byte(mux.Vars(r)["address"])
		var total uint64
		for _, sid := range s.cache.RelatedTransactions(address) {
			ctx, ok := s.store.GetTransaction(sid)
			if !ok {
				continue
			}
			for _, out := range ctx.Effect.ProducedOutputs {
				if string(out.PubKey()) == string(address) && !out.Record.AmountHidden {
					total += out.Record.Amount
				}
			}
		}
		writeJSON(w, http.StatusOK, map[string]uint64{"balance": total})
	}).Methods(http.MethodGet)

	r.HandleFunc("/delegation/{address}/{validator}", func(w http.ResponseWriter, r *http.Request) {
		address := []byte(mux.Vars(r)["address"])
		nodeID, err := parseNodeID(mux.Vars(r)["validator"])
		if err != nil {
			writeText(w, http.StatusBadRequest, "malformed validator id")
			return
		}
		writeJSON(w, http.StatusOK, map[string]uint64{
			"amount": s.store.DelegationAmount(address, nodeID),
		})
	}).Methods(http.MethodGet)

	r.HandleFunc("/validator/{validator}", func(w http.ResponseWriter, r *http.Request) {
		nodeID, err := parseNodeID(mux.Vars(r)["validator"])
		if err != nil {
			writeText(w, http.StatusBadRequest, "malformed validator id")
			return
		}
		pubKey, ok := s.store.StakingEngine().GetValidatorPubKey(nodeID)
		if !ok {
			writeText(w, http.StatusNotFound, "no such validator")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"pub_key": base58.Encode(pubKey)})
	}).Methods(http.MethodGet)

	r.HandleFunc("/created_assets/{issuer}", func(w http.ResponseWriter, r *http.Request) {
		if s.cache == nil {
			writeText(w, http.StatusServiceUnavailable, "cache not wired")
			return
		}
		issuer := []byte(mux.Vars(r)["issuer"])
		writeJSON(w, http.StatusOK, s.cache.CreatedAssets(issuer))
	}).Methods(http.MethodGet)

	r.HandleFunc("/abar_memo/{sid}", func(w http.ResponseWriter, r *http.Request) {
		if s.cache == nil {
			writeText(w, http.StatusServiceUnavailable, "cache not wired")
			return
		}
		sid, err := parseATxoSID(mux.Vars(r)["sid"])
		if err != nil {
			writeText(w, http.StatusBadRequest, err.Error())
			return
		}
		memo, ok := s.cache.AbarMemo(sid)
		if !ok {
			writeText(w, http.StatusNotFound, "no memo for this abar")
			return
		}
		writeText(w, http.StatusOK, memo)
	}).Methods(http.MethodGet)

	r.HandleFunc("/abar_proof/{sid}", func(w http.ResponseWriter, r *http.Request) {
		sid, err := parseATxoSID(mux.Vars(r)["sid"])
		if err != nil {
			writeText(w, http.StatusBadRequest, err.Error())
			return
		}
		if !s.store.HasABAR(sid) {
			writeText(w, http.StatusNotFound, "no such abar")
			return
		}
		// The Merkle inclusion proof itself is delegated to CryptoOps; its exact
		// proof byte layout is out of scope here, so this route reports only
		// that the commitment is present.
		writeJSON(w, http.StatusOK, map[string]bool{"present": true})
	}).Methods(http.MethodGet)

	r.HandleFunc("/abar_leaves_since/{sid}", func(w http.ResponseWriter, r *http.Request) {
		sid, err := parseATxoSID(mux.Vars(r)["sid"])
		if err != nil {
			writeText(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, s.store.ABARLeavesSince(sid))
	}).Methods(http.MethodGet)

	r.HandleFunc("/owned_utxos/{address}", func(w http.ResponseWriter, r *http.Request) {
		if s.cache == nil {
			writeText(w, http.StatusServiceUnavailable, "cache not wired")
			return
		}
		address := []byte(mux.Vars(r)["address"])
		var owned []ids.TxoSID
		for _, sid := range s.cache.RelatedTransactions(address) {
			ctx, ok := s.store.GetTransaction(sid)
			if !ok {
				continue
			}
			for i, out := range ctx.Effect.ProducedOutputs {
				if string(out.PubKey()) == string(address) {
					owned = append(owned, ctx.OutputSids[i])
				}
			}
		}
		writeJSON(w, http.StatusOK, owned)
	}).Methods(http.MethodGet)

	r.HandleFunc("/nullifier/{hex}", func(w http.ResponseWriter, r *http.Request) {
		n, err := parseNullifier(mux.Vars(r)["hex"])
		if err != nil {
			writeText(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"published": s.store.HasNullifier(n)})
	}).Methods(http.MethodGet)
}

func parseTxoSID(s string) (ids.TxoSID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	return ids.TxoSID(v), err
}

func parseATxoSID(s string) (ids.ATxoSID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	return ids.ATxoSID(v), err
}

func parseNodeID(s string) (ids.NodeID, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return ids.NodeID{}, err
	}
	short, err := ids.ToShortID(b)
	if err != nil {
		return ids.NodeID{}, err
	}
	return ids.NodeID(short), nil
}

func parseNullifier(hexStr string) (crypto.Nullifier, error) {
	var n crypto.Nullifier
	b, err := hex.DecodeString(hexStr)
	if err != nil {
		return n, err
	}
	if len(b) != len(n) {
		return n, fmt.Errorf("nullifier must be %d bytes, got %d", len(n), len(b))
	}
	copy(n[:], b)
	return n, nil
}
