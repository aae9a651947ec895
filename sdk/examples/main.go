package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/emresys/emre/internal/model"
	"github.com/emresys/emre/internal/service"
	"github.com/emresys/emre/sdk/client"
)

const (
	// Change these values to match your environment
	serviceURL = "http://localhost:8080"
	email      = "dispatcher@example.org"
	password   = "change-me-please"
)

func main() {
	// Initialize the client
	config := &client.Config{
		BaseURL: serviceURL,
		Timeout: 10 * time.Second,
	}
	c := client.NewClient(config)

	// Create a context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// Run the example
	if err := runExample(ctx, c); err != nil {
		log.Fatalf("Error running example: %v", err)
	}
}

func runExample(ctx context.Context, c *client.Client) error {
	fmt.Println("Running coordination API example...")

	// Step 1: Authenticate
	fmt.Println("\n1. Logging in...")
	if _, err := c.Login(ctx, email, password); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	// Step 2: Create an organization; the caller becomes its admin
	fmt.Println("\n2. Creating organization...")
	org, err := c.CreateOrganization(ctx, service.CreateOrganizationInput{
		Name:   "Coastal Relief",
		Type:   model.OrgTypeDisasterRelief,
		Region: "Gulf Coast",
	})
	if err != nil {
		return fmt.Errorf("create organization: %w", err)
	}
	fmt.Printf("   Organization %s (%s)\n", org.Name, org.ID)

	// Step 3: Create a response team
	fmt.Println("\n3. Creating team...")
	team, err := c.CreateTeam(ctx, service.CreateTeamInput{
		Name:           "Alpha Rescue",
		OrganizationID: org.ID,
		Type:           model.TeamTypeRescue,
	})
	if err != nil {
		return fmt.Errorf("create team: %w", err)
	}
	fmt.Printf("   Team %s (%s)\n", team.Name, team.ID)

	// Step 4: Register inventory
	fmt.Println("\n4. Registering resource...")
	resource, err := c.CreateResource(ctx, service.CreateResourceInput{
		Name:           "Pump Truck",
		Type:           model.ResourceVehicle,
		Quantity:       3,
		OrganizationID: org.ID,
		TeamID:         &team.ID,
	})
	if err != nil {
		return fmt.Errorf("create resource: %w", err)
	}
	fmt.Printf("   Resource %s, quantity %d\n", resource.Name, resource.Quantity)

	// Step 5: Open an incident
	fmt.Println("\n5. Opening incident...")
	incident, err := c.CreateIncident(ctx, service.CreateIncidentInput{
		Title:          "Flooding on Route 9",
		Type:           model.IncidentTypeEmergency,
		Priority:       model.PriorityHigh,
		OrganizationID: org.ID,
		AssignedTeamID: &team.ID,
	})
	if err != nil {
		return fmt.Errorf("create incident: %w", err)
	}
	fmt.Printf("   Incident %s (%s)\n", incident.Title, incident.ID)

	// Step 6: Dispatch two units against the incident
	fmt.Println("\n6. Assigning resource...")
	assignment, err := c.AssignResource(ctx, resource.ID, service.AssignResourceInput{
		IncidentID: incident.ID,
		Quantity:   2,
	})
	if err != nil {
		return fmt.Errorf("assign resource: %w", err)
	}
	fmt.Printf("   Assignment %s, quantity %d\n", assignment.ID, assignment.Quantity)

	detail, err := c.GetResource(ctx, resource.ID)
	if err != nil {
		return fmt.Errorf("get resource: %w", err)
	}
	fmt.Printf("   Available after checkout: %d, status %s\n", detail.AvailableQty, detail.Status)

	// Step 7: Return the units once the incident winds down
	fmt.Println("\n7. Returning resource...")
	returned, err := c.ReturnResource(ctx, resource.ID, assignment.ID)
	if err != nil {
		return fmt.Errorf("return resource: %w", err)
	}
	fmt.Printf("   Returned at %s\n", returned.ReturnedAt.Format(time.RFC3339))

	// Step 8: Log an incident update
	fmt.Println("\n8. Posting incident update...")
	update, err := c.AddIncidentUpdate(ctx, incident.ID, service.AddUpdateInput{
		Content:    "Pump truck released, water level receding.",
		UpdateType: model.UpdateResourceUpdate,
	})
	if err != nil {
		return fmt.Errorf("add incident update: %w", err)
	}
	fmt.Printf("   Update %s (%s)\n", update.ID, update.UpdateType)

	fmt.Println("\nDone.")
	return nil
}
