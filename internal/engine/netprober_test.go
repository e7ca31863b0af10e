package engine

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/August26/proxystatus-go/internal/model"
	"github.com/August26/proxystatus-go/internal/probe"
)

func TestEvaluate_EmptyHostNeverReachesLocalListener(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, portStr, err := net.SplitHostPort(srv.Listener.Addr().String())
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	port, _ := strconv.Atoi(portStr)

	e := New(probe.NewNetProber(nil, "http://example.invalid/"), WithHostTimeout(time.Second))
	rep := e.Evaluate(context.Background(), model.ProxyDescriptor{Kind: model.KindHTTP, Host: "", Port: port}, time.Second)

	if rep.Verdict != model.VerdictInvalidAddress {
		t.Fatalf("verdict = %s, want invalid_address", rep.Verdict)
	}
	if rep.HostProbe.Reachable || rep.ContentProbe.Reachable {
		t.Fatalf("probes reached the local listener: %+v / %+v", rep.HostProbe, rep.ContentProbe)
	}
}
