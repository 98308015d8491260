package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"rocket-sim/pkg/config"
	"rocket-sim/pkg/discovery/consul"
	discovery "rocket-sim/pkg/registry"
	"rocket-sim/simulator/handler"
	"rocket-sim/simulator/model"
	"rocket-sim/simulator/simulation"
)

const (
	serviceName = "simulator"

	StepChannel   = "simulation.step"
	LandedChannel = "simulation.landed"
)

var (
	ctx         = context.Background()
	redisClient *redis.Client
)

func main() {
	var port int
	flag.IntVar(&port, "port", 8081, "API handler port")
	flag.Parse()

	config.InitConfig()
	dt := driverTimestep(config.GetenvFloat("SIM_DT", defaultDt))
	budget := config.GetenvFloat("SIM_BUDGET", 500)
	tick := tickInterval(config.GetenvFloat("SIM_TICK_MS", defaultTickMs))

	log.Printf("🚀 Starting simulator service on port %d", port)

	// 1️⃣ Connect to Redis (retry until ready)
	redisAddr := config.Getenv(config.RedisAddr, "localhost:6379")
	for {
		redisClient = redis.NewClient(&redis.Options{
			Addr: redisAddr,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Println("⚠️ Redis not ready, retrying in 2s...")
			redisClient.Close()
			time.Sleep(2 * time.Second)
			continue
		}
		break
	}

	// 2️⃣ Initialize simulation state
	handler.DefaultDt = dt
	handler.Scenario = simulation.Scenario{
		Config: simulation.Config{
			Gravity:     model.Vec(config.GetenvFloat("SIM_GRAVITY_X", 0), config.GetenvFloat("SIM_GRAVITY_Y", -9.8)),
			GroundLevel: config.GetenvFloat("SIM_GROUND_LEVEL", 0),
		},
		Thrust:   config.GetenvFloat("ROCKET_THRUST", 10.0),
		Duration: config.GetenvFloat("ROCKET_DURATION", 60.0),
	}
	simulation.InitSimulation(handler.Scenario)

	hub := handler.NewHub()
	handler.OnStep = func(snap simulation.Snapshot, landed []simulation.Landing) {
		hub.Broadcast(snap)
		publishStep(snap, landed)
	}

	// 3️⃣ Register with Consul using container hostname
	registry, err := consul.NewRegistry(config.Getenv(config.ConsulAddr, "localhost:8500"))
	if err != nil {
		log.Fatalf("❌ Failed to connect to Consul: %v", err)
	}

	hostname, err := os.Hostname()
	if err != nil {
		log.Fatalf("❌ Failed to get container hostname: %v", err)
	}

	instanceID := discovery.GenerateInstanceID(serviceName)
	serviceAddr := fmt.Sprintf("%s:%d", hostname, port)
	if err := registry.Register(ctx, instanceID, serviceName, serviceAddr); err != nil {
		log.Fatalf("❌ Failed to register in Consul: %v", err)
	}
	defer registry.Deregister(ctx, instanceID, serviceName)

	// 4️⃣ Start health reporting loop
	go func() {
		for {
			if err := registry.ReportHealthyState(instanceID, serviceName); err != nil {
				log.Println("⚠️ Failed to report healthy state:", err)
			}
			time.Sleep(2 * time.Second)
		}
	}()

	// 5️⃣ Start automatic simulation steps
	go runDriver(dt, budget, tick)

	// 6️⃣ HTTP Handlers
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	http.HandleFunc("/positions", handler.GetPositionsHandler)
	http.HandleFunc("/status", handler.GetStatusHandler)
	http.HandleFunc("/step", handler.StepHandler)
	http.HandleFunc("/particles", handler.AddParticleHandler)
	http.HandleFunc("/reset", handler.ResetHandler)
	http.Handle("/ws", hub)

	log.Printf("🌐 Simulator HTTP server listening on port %d", port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), nil))
}

const (
	defaultDt     = 1.0
	defaultTickMs = 50
	maxTickMs     = 60000
)

// driverTimestep rejects a dt the driver could never step with.
func driverTimestep(dt float64) float64 {
	if model.ValidateTimestep(dt) != nil || dt == 0 {
		log.Printf("⚠️ Ignoring SIM_DT=%g: must be positive, using %g", dt, defaultDt)
		return defaultDt
	}
	return dt
}

// tickInterval converts SIM_TICK_MS to a ticker period between 1ms and a minute.
func tickInterval(ms float64) time.Duration {
	if !(ms >= 1 && ms <= maxTickMs) {
		log.Printf("⚠️ Ignoring SIM_TICK_MS=%g: must be within [1, %d], using %d", ms, maxTickMs, defaultTickMs)
		ms = defaultTickMs
	}
	return time.Duration(ms * float64(time.Millisecond))
}

// runDriver steps the live simulation on every tick while it has bodies and
// its clock is below budget. A reset simulation is picked up again.
func runDriver(dt, budget float64, tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	idle := false
	for range ticker.C {
		simulation.Mutex.Lock()
		done := simulation.Current.Len() == 0 || simulation.Current.Time() >= budget
		simulation.Mutex.Unlock()

		if done {
			if !idle {
				log.Println("🏁 Simulation finished, waiting for reset")
			}
			idle = true
			continue
		}
		idle = false

		if _, _, err := handler.Step(dt); err != nil {
			log.Printf("❌ Simulation step failed: %v", err)
		}
	}
}

// publishStep announces the step and every landing on Redis.
func publishStep(snap simulation.Snapshot, landed []simulation.Landing) {
	if err := redisClient.Publish(ctx, StepChannel, fmt.Sprintf("t=%g n=%d", snap.Time, snap.Count)).Err(); err != nil {
		log.Printf("❌ Failed to publish %s event: %v", StepChannel, err)
	}
	for _, l := range landed {
		payload, err := json.Marshal(l)
		if err != nil {
			log.Printf("❌ Failed to encode landing: %v", err)
			continue
		}
		if err := redisClient.Publish(ctx, LandedChannel, payload).Err(); err != nil {
			log.Printf("❌ Failed to publish %s event: %v", LandedChannel, err)
			continue
		}
		log.Printf("🪂 Body %d (%s) landed at t=%g", l.BodyID, l.Kind, l.Time)
	}
}
