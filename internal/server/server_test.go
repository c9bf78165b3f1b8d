package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"
)

func TestRoutes_Registered(t *testing.T) {
	ts := httptest.NewServer(Routes())
	defer ts.Close()

	client := &http.Client{CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}}

	tests := []struct {
		name         string
		method       string
		path         string
		expectedCode int
	}{
		{"Health", http.MethodGet, "/health", http.StatusOK},
		{"Metrics", http.MethodGet, "/metrics", http.StatusOK},
		{"Swagger redirect", http.MethodGet, "/swagger", http.StatusMovedPermanently},
		{"Unknown route", http.MethodGet, "/nope", http.StatusNotFound},
		{"Wrong method", http.MethodDelete, "/documents", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, ts.URL+tt.path, nil)
			resp, err := client.Do(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.expectedCode {
				t.Errorf("%s %s got %d, want %d", tt.method, tt.path, resp.StatusCode, tt.expectedCode)
			}
		})
	}
}

func TestShutDownHandler_StopsWorkersAndServices(t *testing.T) {
	params := ShutdownParams{
		GracefulShutdown: make(chan os.Signal, 1),
		StopExecution:    make(chan bool),
		WorkerStop:       make(chan bool),
		Group:            &sync.WaitGroup{},
	}
	var servicesClosed bool
	params.CloseServices = func() { servicesClosed = true }

	params.Group.Add(1)
	go func() {
		<-params.WorkerStop
		params.Group.Done()
	}()

	go ShutDownHandler(params)
	params.GracefulShutdown <- syscall.SIGTERM

	select {
	case <-params.StopExecution:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown did not complete")
	}
	if !servicesClosed {
		t.Error("external services should be closed on shutdown")
	}
}
