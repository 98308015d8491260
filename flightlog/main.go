package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"rocket-sim/flightlog/handler"
	"rocket-sim/flightlog/store"
	"rocket-sim/pkg/config"
	"rocket-sim/pkg/discovery/consul"
	discovery "rocket-sim/pkg/registry"
)

const serviceName = "flightlog"

var ctx = context.Background()

func main() {
	var port int
	flag.IntVar(&port, "port", 8084, "Flight log service port")
	flag.Parse()

	config.InitConfig()

	log.Printf("🚀 Starting flight log service on port %d", port)

	// Open SQLite DB
	db, err := store.Open(config.Getenv("FLIGHTLOG_DB", "./flightlog/flightlog.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Register service in Consul
	registry, err := consul.NewRegistry(config.Getenv(config.ConsulAddr, "localhost:8500"))
	if err != nil {
		log.Fatalf("❌ Failed to connect to Consul: %v", err)
	}
	instanceID := discovery.GenerateInstanceID(serviceName)
	serviceAddr := fmt.Sprintf("localhost:%d", port)

	if err := registry.Register(ctx, instanceID, serviceName, serviceAddr); err != nil {
		log.Fatalf("❌ Failed to register service in Consul: %v", err)
	}
	defer registry.Deregister(ctx, instanceID, serviceName)

	// Start health reporting to Consul
	go func() {
		for {
			if err := registry.ReportHealthyState(instanceID, serviceName); err != nil {
				log.Println("⚠️ Failed to report healthy state:", err)
			}
			time.Sleep(2 * time.Second)
		}
	}()

	// HTTP Handlers
	h := &handler.Handler{Store: db}
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	http.HandleFunc("/landings", h.Landings)
	http.HandleFunc("/landings/", h.LandingByID)

	log.Printf("📦 Flight log running at http://localhost:%d", port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), nil))
}
