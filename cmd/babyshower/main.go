package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"babyshower/internal/api"
	"babyshower/internal/app"
	"babyshower/internal/config"
	"babyshower/internal/models"
	"babyshower/internal/session"
)

func main() {
	adminSurface := flag.Bool("admin", false, "start at the admin login surface")
	dashboardSurface := flag.Bool("admin-dashboard", false, "start at the admin dashboard surface")
	flag.Parse()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize session store and backend client
	store := session.NewStore(cfg.DataDir)
	client, err := api.NewClient(cfg.BackendURL)
	if err != nil {
		fmt.Printf("Error initializing backend client: %v\n", err)
		os.Exit(1)
	}

	surface := app.SurfacePublic
	switch {
	case *dashboardSurface:
		surface = app.SurfaceAdminDashboard
	case *adminSurface:
		surface = app.SurfaceAdminLogin
	}

	u := &ui{
		cfg:     cfg,
		scanner: bufio.NewScanner(os.Stdin),
		nav:     app.NewNav(surface),
		guest:   app.NewGuestFlow(client, store),
		admin:   app.NewAdminFlow(client, store),
		client:  client,
	}

	fmt.Printf("🎀 %s — %s\n", cfg.EventTitle, cfg.HonoreeNames)
	fmt.Println(strings.Repeat("=", 40))

	u.run()
}

type ui struct {
	cfg     *config.Config
	scanner *bufio.Scanner
	nav     *app.Nav
	guest   *app.GuestFlow
	admin   *app.AdminFlow
	client  *api.Client
	browser *app.Browser
}

func (u *ui) run() {
	for {
		switch u.nav.Surface() {
		case app.SurfacePublic:
			u.publicSite()
		case app.SurfaceAdminLogin:
			u.adminLoginView()
		case app.SurfaceAdminDashboard:
			u.adminDashboardView()
		}
	}
}

func (u *ui) publicSite() {
	// Silent re-entry from a persisted guest session
	if !u.guest.Authenticated() && u.guest.Resume() {
		u.enterHome()
	}

	switch u.nav.View() {
	case app.ViewRegister:
		u.registerView()
	case app.ViewLogin:
		u.loginView()
	case app.ViewHome:
		u.homeView()
	case app.ViewGifts:
		u.giftsView()
	}
}

func (u *ui) enterHome() {
	u.nav.Goto(app.ViewHome)
	u.browser = app.NewBrowser(u.client, u.nav, u.guest.User())
	if err := u.browser.LoadReservations(); err != nil {
		fmt.Printf("Could not load your reservations: %v\n", err)
	}
}

func (u *ui) registerView() {
	fmt.Printf("\n📋 Confirm your attendance — %s\n", u.cfg.EventDate)
	fmt.Println("(enter an empty name to log in instead, 'admin' for the admin panel, 'exit' to quit)")

	name := u.prompt("Full name")
	switch name {
	case "exit":
		u.quit()
	case "admin":
		// Visible admin-panel link on the registration page
		u.nav.GotoSurface(app.SurfaceAdminLogin)
		return
	case "":
		u.nav.Goto(app.ViewLogin)
		return
	}

	form := &app.RegistrationForm{Name: name, Whatsapp: u.prompt("WhatsApp")}
	if u.confirm("Bringing companions?") {
		u.editCompanions(form)
	}
	form.StayConnected = u.confirm("Stay connected?")

	user, err := u.guest.Register(form)
	if err != nil {
		fmt.Printf("❌ Registration failed: %v\n", err)
		return
	}
	fmt.Printf("✅ Welcome, %s! Your attendance is confirmed.\n", user.Name)
	u.enterHome()
}

func (u *ui) editCompanions(form *app.RegistrationForm) {
	for {
		if len(form.Companions) > 0 {
			fmt.Println("Companions:")
			for i, c := range form.Companions {
				fmt.Printf("  %d. %s\n", i+1, c)
			}
		}
		input := u.prompt("Add a name, 'remove <n>', or enter to finish")
		if input == "" {
			return
		}
		if rest, ok := strings.CutPrefix(input, "remove "); ok {
			i, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil || i < 1 || i > len(form.Companions) {
				fmt.Println("Invalid companion number.")
				continue
			}
			form.RemoveCompanion(i - 1)
			continue
		}
		form.AddCompanion(input)
	}
}

func (u *ui) loginView() {
	fmt.Println("\n👋 Welcome back! Log in with the details you registered with.")
	fmt.Println("(enter an empty name to register instead)")

	name := u.prompt("Full name")
	if name == "" {
		u.nav.Goto(app.ViewRegister)
		return
	}
	whatsapp := u.prompt("WhatsApp")

	user, err := u.guest.Login(name, whatsapp)
	if err != nil {
		fmt.Printf("❌ Login failed: %v\n", err)
		return
	}
	fmt.Printf("✅ Hello again, %s!\n", user.Name)
	u.enterHome()
}

func (u *ui) homeView() {
	user := u.guest.User()
	fmt.Printf("\n👋 Hello, %s!\n", user.Name)
	fmt.Printf("📅 %s  📍 %s\n", u.cfg.EventDate, u.cfg.EventLocation)
	fmt.Printf("📞 Contact: %s\n", u.cfg.ContactInfo)

	fmt.Println("\n🎁 Gift list:")
	for i, cat := range models.Categories {
		fmt.Printf("  %d. %s %s\n", i+1, cat.Icon, cat.Label)
	}

	if res := u.browser.Reservations(); len(res) > 0 {
		fmt.Println("\n💝 Your chosen gifts:")
		for _, item := range res {
			fmt.Printf("  - %s (qty %d)\n", item.Gift.Name, item.Reservation.Quantity)
		}
	}

	fmt.Print("\nPick a category (1-6), 'logout', or 'exit': ")
	input := u.readLine()
	switch input {
	case "exit":
		u.quit()
	case "logout":
		u.guest.Logout()
		u.browser = nil
		u.nav.Goto(app.ViewRegister)
	case "\x01": // Ctrl+A, the hidden admin chord
		if u.nav.OpenAdminOverlay() {
			u.adminOverlay()
		}
	default:
		i, err := strconv.Atoi(input)
		if err != nil || i < 1 || i > len(models.Categories) {
			fmt.Println("Invalid choice.")
			return
		}
		if err := u.browser.SelectCategory(models.Categories[i-1]); err != nil {
			fmt.Printf("❌ Error loading gifts: %v\n", err)
		}
	}
}

func (u *ui) giftsView() {
	cat := u.browser.Category()
	fmt.Printf("\n%s %s\n", cat.Icon, cat.Label)
	fmt.Println(strings.Repeat("-", 40))

	gifts := u.browser.Gifts()
	if len(gifts) == 0 {
		fmt.Println("No gifts in this category.")
	}
	for i, g := range gifts {
		status := fmt.Sprintf("available: %d of %d", g.AvailableQuantity, g.Quantity)
		if !g.IsAvailable {
			status = "unavailable"
		}
		fmt.Printf("  %d. %s — %s (%s)\n", i+1, g.Name, g.PriceRange, status)
		fmt.Printf("     %s\n", g.Description)
		if g.BuyLink != "" {
			fmt.Printf("     where to buy: %s\n", g.BuyLink)
		}
	}

	fmt.Print("\nPick a gift to reserve (number), or 'back': ")
	input := u.readLine()
	if input == "back" || input == "" {
		u.browser.Back()
		return
	}
	i, err := strconv.Atoi(input)
	if err != nil || i < 1 || i > len(gifts) {
		fmt.Println("Invalid choice.")
		return
	}

	gift := gifts[i-1]
	if !gift.IsAvailable {
		fmt.Println("That gift is no longer available.")
		return
	}
	if err := u.browser.Reserve(gift, 1); err != nil {
		fmt.Printf("❌ Could not reserve gift: %v\n", err)
		return
	}
	fmt.Println("💖 Gift reserved, thank you!")
}

// adminOverlay is the in-page admin login reachable from home. It drives the
// same admin flow as the standalone surface.
func (u *ui) adminOverlay() {
	defer u.nav.CloseAdminOverlay()

	fmt.Println("\n🔐 Admin login (empty username cancels)")
	username := u.prompt("Username")
	if username == "" {
		fmt.Println("Cancelled.")
		return
	}
	password := u.prompt("Password")

	if err := u.admin.Login(username, password); err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	u.nav.GotoSurface(app.SurfaceAdminDashboard)
}

func (u *ui) adminLoginView() {
	fmt.Println("\n🔐 Admin panel — restricted to event organizers")
	fmt.Println("(enter an empty username to go back to the site)")

	username := u.prompt("Username")
	if username == "" {
		u.nav.GotoSurface(app.SurfacePublic)
		return
	}
	password := u.prompt("Password")

	if err := u.admin.Login(username, password); err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	u.nav.GotoSurface(app.SurfaceAdminDashboard)
}

func (u *ui) adminDashboardView() {
	if u.admin.State() != app.AdminDashboardLoaded && !u.admin.Resume() {
		// No valid persisted session, back to the login entry point
		u.nav.GotoSurface(app.SurfaceAdminLogin)
		return
	}

	d := u.admin.Snapshot()
	fmt.Printf("\n🎀 Admin dashboard — %s\n", u.cfg.HonoreeNames)
	fmt.Printf("👥 Confirmed: %d  👫 Companions: %d  🎉 Attendees: %d  🎁 Reserved: %d of %d\n",
		d.TotalConfirmed, d.TotalCompanions, d.TotalAttendees, d.TotalGiftsReserved, d.TotalGiftsAvailable)

	fmt.Println("\nConfirmed guests:")
	for _, g := range d.Users {
		fmt.Printf("  - %s (%s)\n", g.Name, g.Whatsapp)
		if len(g.Companions) > 0 {
			fmt.Printf("    companions: %s\n", strings.Join(g.Companions, ", "))
		}
	}

	fmt.Println("\nReserved gifts:")
	for _, r := range d.Reservations {
		fmt.Printf("  - %s by %s (qty %d, %s)\n", r.GiftName, r.UserName, r.Quantity, r.ReservedAt)
	}

	if len(d.AvailableGifts) == 0 {
		fmt.Println("\n🎉 Every gift has been reserved!")
	} else {
		fmt.Printf("\nStill available (%d):\n", len(d.AvailableGifts))
		for _, g := range d.AvailableGifts {
			fmt.Printf("  - %s (%d left)\n", g.Name, g.AvailableQuantity)
		}
	}

	fmt.Print("\n'refresh', 'site', 'logout', or 'exit': ")
	switch u.readLine() {
	case "refresh":
		if err := u.admin.Refresh(); err != nil {
			fmt.Println("❌ Error refreshing data, please log in again.")
			u.nav.GotoSurface(app.SurfaceAdminLogin)
		}
	case "site":
		u.nav.GotoSurface(app.SurfacePublic)
	case "logout":
		u.admin.Logout()
		u.nav.GotoSurface(app.SurfaceAdminLogin)
	case "exit":
		u.quit()
	}
}

func (u *ui) prompt(label string) string {
	fmt.Printf("%s: ", label)
	return u.readLine()
}

func (u *ui) readLine() string {
	if !u.scanner.Scan() {
		u.quit()
	}
	return strings.TrimSpace(u.scanner.Text())
}

func (u *ui) confirm(label string) bool {
	fmt.Printf("%s (y/n): ", label)
	answer := strings.ToLower(u.readLine())
	return answer == "y" || answer == "yes"
}

func (u *ui) quit() {
	fmt.Println("\nGoodbye! 👋")
	os.Exit(0)
}
