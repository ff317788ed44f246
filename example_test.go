package avatarsync_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/bft-labs/avatarsync"
	"github.com/bft-labs/avatarsync/pkg/settings"
)

// ExampleNewHTTP demonstrates embedding a synchronizer in an application.
func ExampleNewHTTP() {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(avatarsync.Config{
			ID: "avatar-001", Name: "Default Avatar", Color: "#4F46E5", Scale: 1, Visible: true,
		})
	}))
	defer backend.Close()

	loaded := make(chan avatarsync.State, 1)
	s := avatarsync.NewHTTP(backend.URL, nil,
		settings.WithEventHandler(settings.HandlerFuncs{
			StateChange: func(e settings.StateChangeEvent) { loaded <- e.Current },
		}),
	)
	fmt.Println("loading:", s.Snapshot().IsLoading)

	if err := s.Start(context.Background()); err != nil {
		fmt.Println("start:", err)
		return
	}
	st := <-loaded
	_ = s.Stop()

	fmt.Println("name:", st.Config.Name)
	fmt.Println("error:", st.IsError)

	// Output:
	// loading: true
	// name: Default Avatar
	// error: false
}

// ExampleRun demonstrates a seeded synchronizer that keeps its config when
// the backend is unreachable.
func ExampleRun() {
	seed := &avatarsync.Config{ID: "avatar-001", Name: "Seeded", Color: "#fff", Scale: 1}
	s := avatarsync.NewHTTP("http://127.0.0.1:1", seed, settings.WithInterval(time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := avatarsync.Run(ctx, s); err != nil {
		fmt.Println("run:", err)
	}

	st := s.Snapshot()
	fmt.Println(st.Config.Name, st.IsLoading, st.IsError)

	// Output: Seeded false false
}
