// Package example is sample input for the Go renderer.
// Module docs: https://go.dev/ref/mod
package example

import (
	"fmt"
	"net/http"
	"time"
)

// Person represents a human being
type Person struct {
	Name    string
	Age     int
	Address *Address
}

// Address stores location information
type Address struct {
	Street  string
	City    string
	Country string
	ZipCode int
}

// SayHello is a method on Person that greets
func (p *Person) SayHello() string {
	return fmt.Sprintf("Hello, my name is %s and I am %d years old", p.Name, p.Age)
}

// Fetch asks the status page (https://www.githubstatus.com/) how things are.
func Fetch(client *http.Client) (int, error) {
	resp, err := client.Get("https://www.githubstatus.com/api/v2/status.json")
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

func Count() {
	for i := 0; i < 3; i++ {
		fmt.Printf("Counting: %d\n", i)
		time.Sleep(100 * time.Millisecond)
	}

	colors := map[string]string{
		"red":   "#ff0000",
		"green": "#00ff00",
		"blue":  "#0000ff",
	}
	for color, hex := range colors {
		fmt.Printf("Color %s has hex code %s\n", color, hex)
	}
}
