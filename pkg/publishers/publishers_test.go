package publishers

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, raw string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestLoadRegistryEnabledFilter(t *testing.T) {
	path := writeFile(t, "publishers.yaml", `
publishers:
  - id: http1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: queue
    type: SQS
    sqs:
      uri: " https://sqs.us-west-2.amazonaws.com/1/lookups "
      region: us-west-2
      access_key_id: AKIA
      secret_access_key: s3cr3t
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "queue" {
		t.Fatalf("expected only queue enabled, got %#v", enabled)
	}
	q := enabled[0]
	if q.Type != TypeSQS || q.SQS.QueueURL != "https://sqs.us-west-2.amazonaws.com/1/lookups" {
		t.Fatalf("sqs config not sanitized: %#v", q.SQS)
	}
	if q.SQS.AccessKeyID != "AKIA" || q.SQS.SecretAccessKey != "s3cr3t" {
		t.Fatalf("inline credentials not decoded: %#v", q.SQS.AWSCredentials)
	}
	if cfg, ok := reg.ByID("http1"); !ok || cfg.HTTP.Method != "POST" || cfg.HTTP.TimeoutSeconds != httpDefaultTimeoutSeconds {
		t.Fatalf("http defaults not applied: %#v", cfg.HTTP)
	}
}

func TestLoadRegistryJSON(t *testing.T) {
	path := writeFile(t, "publishers.json", `{"publishers":[
		{"id":"gcp","type":"pubsub","pubsub":{"project_id":"p","topic":"t"}},
		{"id":"topic","type":"sns","sns":{"topic_arn":"arn:aws:sns:us-east-1:1:t","region":"us-east-1"}}
	]}`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(reg.All()) != 2 {
		t.Fatalf("expected 2 publishers, got %d", len(reg.All()))
	}
	if cfg, ok := reg.ByID("gcp"); !ok || cfg.PubSub.Topic != "t" {
		t.Fatalf("pubsub config = %#v", cfg.PubSub)
	}
}

func TestLoadRegistryRejectsDuplicates(t *testing.T) {
	path := writeFile(t, "publishers.yml", `
publishers:
  - {id: a, type: http, http: {url: "https://x"}}
  - {id: a, type: http, http: {url: "https://y"}}
`)
	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestValidatePublisherConfig(t *testing.T) {
	cases := map[string]PublisherConfig{
		"missing id":       {Type: TypeHTTP},
		"missing type":     {ID: "x"},
		"missing http":     {ID: "h1", Type: TypeHTTP},
		"missing sqs url":  {ID: "q", Type: TypeSQS, SQS: &SQSPublisherConfig{Region: "us-east-1"}},
		"missing sns arn":  {ID: "s", Type: TypeSNS, SNS: &SNSPublisherConfig{Region: "us-east-1"}},
		"missing topic":    {ID: "g", Type: TypePubSub, PubSub: &PubSubConfig{ProjectID: "p"}},
		"half credentials": {ID: "q", Type: TypeSQS, SQS: &SQSPublisherConfig{QueueURL: "u", Region: "r", AWSCredentials: AWSCredentials{AccessKeyID: "a"}}},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			if err := validatePublisherConfig(cfg); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
