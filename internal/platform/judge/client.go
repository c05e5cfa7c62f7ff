package judge

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"codequest/internal/common"
)

// StatusAccepted is the judge status id meaning the run matched the expected
// output. Every other id is a rejection.
const StatusAccepted = 3

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type createRequest struct {
	SourceCode     string `json:"source_code"`
	LanguageID     int    `json:"language_id"`
	Stdin          string `json:"stdin"`
	ExpectedOutput string `json:"expected_output"`
}

type createResponse struct {
	Token string `json:"token"`
}

// Verdict is the judge's result for one submission, fetched in plain text
// (base64_encoded=false on the result call).
type Verdict struct {
	Status struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"status"`
	Stdout        string `json:"stdout"`
	Stderr        string `json:"stderr"`
	Message       string `json:"message"`
	CompileOutput string `json:"compile_output"`
	Time          string `json:"time"`
	Memory        int    `json:"memory"`
	Token         string `json:"token"`
}

// Evaluate submits source code against stdin/expected output and fetches the
// verdict. The submission is created in synchronous "wait" mode, so the first
// call blocks until the judge finishes; the HTTP client timeout bounds it.
// Payload fields are base64 encoded because source and IO may hold arbitrary
// bytes. Any transport failure, non-2xx reply, or missing token surfaces as
// common.ErrJudgeUnavailable; no retries.
func (c *Client) Evaluate(ctx context.Context, sourceCode, stdin, expectedOutput string, languageID int) (*Verdict, error) {
	body, err := json.Marshal(createRequest{
		SourceCode:     base64.StdEncoding.EncodeToString([]byte(sourceCode)),
		LanguageID:     languageID,
		Stdin:          base64.StdEncoding.EncodeToString([]byte(stdin)),
		ExpectedOutput: base64.StdEncoding.EncodeToString([]byte(expectedOutput)),
	})
	if err != nil {
		return nil, fmt.Errorf("judge.Evaluate: marshal request: %w", err)
	}

	createURL := c.baseURL + "/submissions?base64_encoded=true&wait=true"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, createURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("judge.Evaluate: build create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("judge create submission failed: %v: %w", err, common.ErrJudgeUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("judge create submission returned %d: %s: %w", resp.StatusCode, string(respBody), common.ErrJudgeUnavailable)
	}

	var created createResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("judge create submission: decode response: %v: %w", err, common.ErrJudgeUnavailable)
	}
	if created.Token == "" {
		return nil, fmt.Errorf("judge create submission: token not received: %w", common.ErrJudgeUnavailable)
	}

	verdict, err := c.fetchResult(ctx, created.Token)
	if err != nil {
		return nil, err
	}
	verdict.Token = created.Token
	return verdict, nil
}

func (c *Client) fetchResult(ctx context.Context, token string) (*Verdict, error) {
	resultURL := c.baseURL + "/submissions/" + token + "?base64_encoded=false"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resultURL, nil)
	if err != nil {
		return nil, fmt.Errorf("judge.fetchResult: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("judge fetch result failed: %v: %w", err, common.ErrJudgeUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("judge fetch result returned %d: %s: %w", resp.StatusCode, string(respBody), common.ErrJudgeUnavailable)
	}

	verdict := &Verdict{}
	if err := json.NewDecoder(resp.Body).Decode(verdict); err != nil {
		return nil, fmt.Errorf("judge fetch result: decode response: %v: %w", err, common.ErrJudgeUnavailable)
	}
	return verdict, nil
}
