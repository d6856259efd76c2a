// Command snsctl is the operator CLI: schema migrations, demo data and a
// live view of activity events.
package main

func main() {
	Execute()
}
