package main

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

var rc = resty.New().SetTimeout(15 * time.Second)

func doGet(url string) ([]byte, error) {
	resp, err := rc.R().Get(url)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("GET %s: %s: %s", url, resp.Status(), resp.Body())
	}
	return resp.Body(), nil
}

func doPostJSON(url string, payload interface{}) ([]byte, error) {
	resp, err := rc.R().SetHeader("Content-Type", "application/json").SetBody(payload).Post(url)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("POST %s: %s: %s", url, resp.Status(), resp.Body())
	}
	return resp.Body(), nil
}

func doDelete(url string) error {
	resp, err := rc.R().Delete(url)
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("DELETE %s: %s: %s", url, resp.Status(), resp.Body())
	}
	return nil
}
