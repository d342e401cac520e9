package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"time"
)

var URL, _ = os.LookupEnv("API_URL")
var PORT, _ = os.LookupEnv("API_PORT")
var SESSION, _ = os.LookupEnv("SESSION_TOKEN")
var SOURCE, _ = os.LookupEnv("SOURCE_ID")

var apiURL = fmt.Sprintf("http://%s:%s/api", URL, PORT)
var adjustURL = fmt.Sprintf("%s/payment-sources/%s/adjust-balance", apiURL, SOURCE)
var balanceURL = fmt.Sprintf("%s/payment-sources/%s/balance", apiURL, SOURCE)
var csrfURL = apiURL + "/csrf-token"

const (
	workers  = 10
	duration = 30 * time.Second
)

var adjustTypes = []string{"income", "adjustment"}

type Adjustment struct {
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

func main() {
	csrfToken, err := fetchCSRFToken()
	if err != nil {
		fmt.Println("Error fetching csrf token:", err)
		os.Exit(1)
	}

	var wg sync.WaitGroup
	wg.Add(workers + 1)
	var adjustResponse interface{}
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			start := time.Now()
			for time.Since(start) < duration {
				resp, err := sendAdjustment(csrfToken)
				if err != nil && resp != nil {
					fmt.Println("Error sending adjustment:", err)
				}

				if resp != nil {
					err = json.NewDecoder(resp.Body).Decode(&adjustResponse)
					if err != nil {
						resp.Body.Close()
						fmt.Printf("error decoding adjustment response: %v", err)
					}

					fmt.Printf("Adjustment sent. Status code: %d, Message: %v\n", resp.StatusCode, adjustResponse)
					resp.Body.Close()
				}

				time.Sleep(time.Duration(rand.Intn(1000)) * time.Millisecond)
			}
		}()
	}

	go func() {
		defer wg.Done()
		ticker := time.NewTicker(5 * time.Second)
		for range ticker.C {
			printBalance()
		}
	}()

	wg.Wait()
	printBalance()
}

func withSession(req *http.Request) {
	req.AddCookie(&http.Cookie{Name: "session_token", Value: SESSION})
}

func fetchCSRFToken() (string, error) {
	req, err := http.NewRequest(http.MethodGet, csrfURL, nil)
	if err != nil {
		return "", err
	}
	withSession(req)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wrong status code: %d", resp.StatusCode)
	}

	var tokenResponse struct {
		CSRFToken string `json:"csrfToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		return "", err
	}
	return tokenResponse.CSRFToken, nil
}

func sendAdjustment(csrfToken string) (*http.Response, error) {
	adjustment := createAdjustment()
	data, err := json.Marshal(adjustment)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, adjustURL, bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-csrf-token", csrfToken)
	withSession(req)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("wrong status code: %d", resp.StatusCode)
	}
	return resp, nil
}

func createAdjustment() Adjustment {
	amount := rand.Float64()*1000 + 1
	if rand.Float64() < 0.3 {
		amount = -amount
	}

	return Adjustment{
		Amount:      fmt.Sprintf("%.2f", amount),
		Type:        adjustTypes[rand.Intn(len(adjustTypes))],
		Description: "load test adjustment",
	}
}

func printBalance() {
	req, err := http.NewRequest(http.MethodGet, balanceURL, nil)
	if err != nil {
		fmt.Println("Error getting balance:", err)
		return
	}
	withSession(req)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Println("Error getting balance:", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Println("Wrong status code:", resp.StatusCode)
		return
	}

	var balanceResponse struct {
		Balance string `json:"balance"`
	}
	err = json.NewDecoder(resp.Body).Decode(&balanceResponse)
	if err != nil {
		fmt.Println("Error decoding balance:", err)
		return
	}

	fmt.Printf("Source balance: %s\n", balanceResponse.Balance)
}
