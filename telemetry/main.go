package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"rocket-sim/pkg/config"
	"rocket-sim/pkg/discovery/consul"
	discovery "rocket-sim/pkg/registry"
	"rocket-sim/telemetry/internal/httpclient"
	"rocket-sim/telemetry/model"
)

const (
	serviceName = "telemetry"

	stepChannel   = "simulation.step"
	landedChannel = "simulation.landed"

	// status is fetched from the simulator every this many steps
	statusEvery = 20
)

var (
	ctx         = context.Background()
	redisClient *redis.Client
)

func main() {
	var port int
	flag.IntVar(&port, "port", 8083, "Telemetry service port")
	flag.Parse()

	config.InitConfig()

	log.Printf("🚀 Starting telemetry service on port %d", port)

	// 1. Connect to Redis
	redisClient = redis.NewClient(&redis.Options{
		Addr: config.Getenv(config.RedisAddr, "localhost:6379"),
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("❌ Failed to connect to Redis: %v", err)
	}

	// 2. Register with Consul
	registry, err := consul.NewRegistry(config.Getenv(config.ConsulAddr, "localhost:8500"))
	if err != nil {
		log.Fatalf("❌ Failed to connect to Consul: %v", err)
	}
	instanceID := discovery.GenerateInstanceID(serviceName)
	if err := registry.Register(ctx, instanceID, serviceName, fmt.Sprintf("localhost:%d", port)); err != nil {
		log.Fatalf("❌ Failed to register in Consul: %v", err)
	}
	defer registry.Deregister(ctx, instanceID, serviceName)

	// 3. Health check pinger
	go func() {
		for {
			if err := registry.ReportHealthyState(instanceID, serviceName); err != nil {
				log.Println("⚠️ Failed to report healthy state:", err)
			}
			time.Sleep(2 * time.Second)
		}
	}()

	// 4. Start HTTP server (health only)
	go startHTTPServer(port)

	// 5. Forward landings from Redis to the flight log
	runRedisLoop(model.NewForwarder(registry), httpclient.NewSimulatorClient(registry))
}

func startHTTPServer(port int) {
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	log.Printf("🌐 HTTP server listening on port %d", port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), nil))
}

func runRedisLoop(fwd *model.Forwarder, sim *httpclient.SimulatorClient) {
	sub := redisClient.Subscribe(ctx, stepChannel, landedChannel)
	defer sub.Close()
	log.Printf("📡 Subscribed to %s and %s", stepChannel, landedChannel)

	steps := 0
	for msg := range sub.Channel() {
		switch msg.Channel {
		case stepChannel:
			steps++
			if steps%statusEvery != 0 {
				continue
			}
			st, err := sim.FetchStatus(ctx)
			if err != nil {
				log.Printf("⚠️ Failed to fetch simulator status: %v", err)
				continue
			}
			log.Printf("🛰️ t=%g bodies=%d", st.Time, st.Count)

		case landedChannel:
			ev, err := model.DecodeLandingEvent(msg.Payload)
			if err != nil {
				log.Printf("❌ %v", err)
				continue
			}
			if err := fwd.Forward(ctx, ev); err != nil {
				log.Printf("❌ Failed to record landing of body %d: %v", ev.BodyID, err)
			}
		}
	}
}
