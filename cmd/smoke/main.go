// Command smoke drives a running owlgraph server end to end: health, export,
// schema, a direct query and, when a model is configured, a translation.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const snapshot = `
ontology: http://example.org/smoke
prefixes:
  ex: "http://example.org/smoke#"
classes: [ex:Disease, ex:Flu]
subClassOf:
  - {sub: ex:Flu, super: ex:Disease}
classAssertions:
  - {individual: ex:flu, class: ex:Flu}
annotations:
  - {subject: ex:Disease, property: rdfs:label, value: Disease}
`

var client = &http.Client{Timeout: 60 * time.Second}

type step struct {
	name        string
	method      string
	path        string
	contentType string
	body        string
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Server base URL")
	withLLM := flag.Bool("llm", false, "Also exercise /translate")
	flag.Parse()

	fmt.Println("Starting smoke test...")

	steps := []step{
		{"Health", http.MethodGet, "/healthz", "", ""},
		{"Export", http.MethodPost, "/export", "application/yaml", snapshot},
		{"Schema", http.MethodGet, "/schema", "", ""},
		{"Query", http.MethodPost, "/query", "application/json",
			`{"mode":"cypher","input":"MATCH (c:OWLClass) RETURN c.name AS name ORDER BY name"}`},
	}
	if *withLLM {
		steps = append(steps, step{"Translate", http.MethodPost, "/translate", "application/json", `{"question":"Which classes are subclasses of Disease?"}`})
	}

	for i, step := range steps {
		fmt.Printf("%d. %s...\n", i+1, step.name)
		body, ok := sendRequest(*baseURL, step.method, step.path, step.contentType, step.body)
		if !ok {
			fmt.Printf("FAILED: %s\n", step.name)
			os.Exit(1)
		}
		fmt.Printf("PASSED: %s\n", step.name)

		if step.name == "Export" {
			var out struct {
				Report string `json:"report"`
			}
			if err := json.Unmarshal(body, &out); err == nil {
				fmt.Println(out.Report)
			}
		}
	}
}

func sendRequest(baseURL, method, endpoint, contentType, payload string) ([]byte, bool) {
	var body io.Reader
	if payload != "" {
		body = bytes.NewBufferString(payload)
	}

	req, err := http.NewRequest(method, strings.TrimSuffix(baseURL, "/")+endpoint, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return nil, false
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return nil, false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return nil, false
	}

	fmt.Printf("Response: %s\n", string(respBody))
	return respBody, true
}
