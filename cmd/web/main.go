package main

import "amora_backend/internal/app"

func main() {
	app.Run()
}
