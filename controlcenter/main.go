package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"rocket-sim/controlcenter/proxy"
	"rocket-sim/pkg/config"
	"rocket-sim/pkg/discovery/consul"
	discovery "rocket-sim/pkg/registry"
)

const serviceName = "controller"

var (
	ctx         = context.Background()
	redisClient *redis.Client
)

func main() {
	port := 8080

	config.InitConfig()

	log.Printf("🚀 Starting Controller service on port %d", port)

	// --- Connect to Redis ---
	redisClient = redis.NewClient(&redis.Options{
		Addr: config.Getenv(config.RedisAddr, "localhost:6379"),
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("❌ Failed to connect to Redis: %v", err)
	}

	// --- Register service with Consul ---
	registry, err := consul.NewRegistry(config.Getenv(config.ConsulAddr, "localhost:8500"))
	if err != nil {
		log.Fatalf("❌ Failed to connect to Consul: %v", err)
	}

	hostname, _ := os.Hostname()
	instanceID := discovery.GenerateInstanceID(serviceName)
	serviceAddr := fmt.Sprintf("%s:%d", hostname, port)

	if err := registry.Register(ctx, instanceID, serviceName, serviceAddr); err != nil {
		log.Fatalf("❌ Failed to register in Consul: %v", err)
	}
	defer registry.Deregister(ctx, instanceID, serviceName)

	// Health reporting loop
	go func() {
		for {
			if err := registry.ReportHealthyState(instanceID, serviceName); err != nil {
				log.Println("⚠️ Failed to report healthy state:", err)
			}
			time.Sleep(2 * time.Second)
		}
	}()

	router := proxy.NewRouter(proxy.RedisCache{Client: redisClient}, registry)

	// --- HTTP Handlers ---
	http.Handle("/", http.FileServer(http.Dir("./static")))

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	http.HandleFunc("/simulator-url", func(w http.ResponseWriter, r *http.Request) {
		url, err := router.ServiceURL(r.Context(), "simulator")
		if err != nil {
			http.Error(w, "Simulator service not found", http.StatusServiceUnavailable)
			log.Println("❌", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"url": url})
	})

	for _, path := range []string{"/positions", "/status", "/step", "/particles", "/reset"} {
		http.HandleFunc(path, router.Proxy("simulator"))
	}
	http.HandleFunc("/landings", router.Proxy("flightlog"))
	http.HandleFunc("/landings/", router.Proxy("flightlog"))
	http.HandleFunc("/forecast", router.Proxy("forecast"))

	log.Printf("🌐 Controller running at http://localhost:%d", port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), nil))
}
