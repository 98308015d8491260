package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"rocket-sim/forecast/handler"
	"rocket-sim/pkg/config"
	"rocket-sim/pkg/discovery/consul"
	discovery "rocket-sim/pkg/registry"
)

const serviceName = "forecast"

var ctx = context.Background()

func main() {
	var port int
	flag.IntVar(&port, "port", 8082, "Forecast service port")
	flag.Parse()

	config.InitConfig()

	log.Printf("🚀 Starting forecast service on port %d", port)

	// 1️⃣ Register with Consul
	registry, err := consul.NewRegistry(config.Getenv(config.ConsulAddr, "localhost:8500"))
	if err != nil {
		log.Fatalf("❌ Failed to connect to Consul: %v", err)
	}

	instanceID := discovery.GenerateInstanceID(serviceName)
	serviceAddr := fmt.Sprintf("localhost:%d", port)

	if err := registry.Register(ctx, instanceID, serviceName, serviceAddr); err != nil {
		log.Fatalf("❌ Failed to register in Consul: %v", err)
	}
	defer registry.Deregister(ctx, instanceID, serviceName)

	// 2️⃣ Health check pinger
	go func() {
		for {
			if err := registry.ReportHealthyState(instanceID, serviceName); err != nil {
				log.Println("⚠️ Failed to report healthy state:", err)
			}
			time.Sleep(2 * time.Second)
		}
	}()

	// 3️⃣ HTTP routes
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	http.HandleFunc("/forecast", handler.ForecastHandler)

	// 4️⃣ Start HTTP server
	log.Printf("🌐 Forecast HTTP server listening on port %d", port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", port), nil))
}
