package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
)

type client struct {
	http *resty.Client
}

func newClient(baseURL, apiKey string) *client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetTimeout(30 * time.Second)
	return &client{http: c}
}

func runSearch(c *client, query, types string, limit int, from, to string, out io.Writer) error {
	params := map[string]string{
		"query": query,
		"types": types,
		"limit": fmt.Sprintf("%d", limit),
	}
	if from != "" {
		params["dateFrom"] = from
	}
	if to != "" {
		params["dateTo"] = to
	}
	return c.get("/api/search", params, out)
}

func runMetrics(c *client, types, granularity, from, to string, out io.Writer) error {
	params := map[string]string{}
	if types != "" {
		params["metricTypes"] = types
	}
	if granularity != "" {
		params["granularity"] = granularity
	}
	if from != "" {
		params["dateFrom"] = from
	}
	if to != "" {
		params["dateTo"] = to
	}
	return c.get("/api/analytics/metrics", params, out)
}

func (c *client) get(path string, params map[string]string, out io.Writer) error {
	resp, err := c.http.R().SetQueryParams(params).Get(path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("%s: %s", resp.Status(), resp.String())
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, resp.Body(), "", "  "); err != nil {
		_, err = out.Write(resp.Body())
		return err
	}
	pretty.WriteByte('\n')
	_, err = out.Write(pretty.Bytes())
	return err
}
