package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const (
	targetHost = "http://localhost:8080"
	rps        = 10
	duration   = 2 * time.Minute
)

type CreateQueryRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	JQL         string   `json:"jql"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	MaxResults  int      `json:"max_results,omitempty"`
}

var (
	// Предопределенные id, присутствующие при старте без JIRA_PROJECT
	queryIDs = []string{
		"pending", "in_progress", "high_priority", "completed",
		"escalations_unassigned", "overdue_issues", "blocked_issues",
		"old_unresolved", "updated_today", "updated_week", "created_last_week",
	}
	customIDs []string
	httpc     = &http.Client{Timeout: 10 * time.Second}
)

func postJSON(url string, body any) (int, []byte, error) {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	var out bytes.Buffer
	_, _ = out.ReadFrom(resp.Body)
	return resp.StatusCode, out.Bytes(), nil
}

// Seed
func seedData() error {
	log.Println("Seeding: creating custom queries...")

	for i := 1; i <= 20; i++ {
		req := CreateQueryRequest{
			Name:     fmt.Sprintf("Load Query %02d", i),
			JQL:      fmt.Sprintf("labels = load-%02d AND statusCategory != done", i),
			Category: "custom",
			Tags:     []string{"load"},
		}

		status, body, err := postJSON(targetHost+"/api/queries", req)
		if err != nil {
			return err
		}
		if status >= 400 {
			log.Printf("WARN queries create returned %d\n", status)
			continue
		}

		var created struct {
			Query struct {
				ID string `json:"id"`
			} `json:"query"`
		}
		if err := json.Unmarshal(body, &created); err == nil && created.Query.ID != "" {
			customIDs = append(customIDs, created.Query.ID)
		}
		time.Sleep(20 * time.Millisecond)
	}

	log.Printf("Seed completed: custom queries=%d\n", len(customIDs))
	return nil
}

// Targeter
func makeTargeter() vegeta.Targeter {
	return func(t *vegeta.Target) error {
		r := rand.Float64()

		// 50% GET queries list
		if r < 0.50 {
			t.Method = http.MethodGet
			t.URL = targetHost + "/api/queries"
			t.Body = nil
			t.Header = map[string][]string{"Accept": {"application/json"}}
			return nil
		}

		// 30% POST execute предопределенного запроса, в основном из кэша
		if r < 0.80 {
			id := queryIDs[rand.Intn(len(queryIDs))]
			t.Method = http.MethodPost
			t.URL = fmt.Sprintf("%s/api/queries/%s/execute", targetHost, id)
			t.Body = nil
			t.Header = map[string][]string{"Accept": {"application/json"}}
			return nil
		}

		// 10% GET stats
		if r < 0.90 {
			t.Method = http.MethodGet
			t.URL = targetHost + "/api/stats"
			t.Body = nil
			t.Header = map[string][]string{"Accept": {"application/json"}}
			return nil
		}

		// 7% GET cache info
		if r < 0.97 {
			t.Method = http.MethodGet
			t.URL = targetHost + "/api/cache"
			t.Body = nil
			t.Header = map[string][]string{"Accept": {"application/json"}}
			return nil
		}

		// 3% POST queries create
		body, _ := json.Marshal(CreateQueryRequest{
			Name: fmt.Sprintf("loadquery-%d", time.Now().UnixNano()),
			JQL:  "labels = transient-load",
			Tags: []string{"load", "transient"},
		})
		t.Method = http.MethodPost
		t.URL = targetHost + "/api/queries"
		t.Body = body
		t.Header = map[string][]string{"Content-Type": {"application/json"}}
		return nil
	}
}

// Attack
func runAttack() {
	rate := vegeta.Rate{Freq: rps, Per: time.Second}
	attacker := vegeta.NewAttacker()
	targeter := makeTargeter()

	var metrics vegeta.Metrics

	log.Printf("Starting attack: %s for %s", targetHost, duration)
	for res := range attacker.Attack(targeter, rate, duration, "load-test") {
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Println("=== Results ===")
	fmt.Printf("Requests: %d\n", metrics.Requests)
	fmt.Printf("Success rate: %.4f%%\n", metrics.Success*100)
	fmt.Printf("Latency mean: %s\n", metrics.Latencies.Mean)
	fmt.Printf("Latency P95: %s\n", metrics.Latencies.P95)
	fmt.Printf("Latency P99: %s\n", metrics.Latencies.P99)
}

func main() {
	rand.Seed(time.Now().UnixNano())

	if err := seedData(); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	runAttack()
}
