// captivate detects whether the current network connection is trapped
// behind a captive portal and, if so, opens the portal's login page in
// the default browser.
package main

func main() {
	Execute()
}
