package assets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/davemarr/asset-inventory/cmd/cli/config"
	"github.com/davemarr/asset-inventory/cmd/cli/output"
	"github.com/spf13/cobra"
)

// asset mirrors the API's asset JSON. Kept local so the CLI only depends on
// the wire contract.
type asset struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	SerialNumber   string `json:"serial_number"`
	Manufacturer   string `json:"manufacturer"`
	Model          string `json:"model"`
	Status         string `json:"status"`
	Location       string `json:"location"`
	AssignedTo     string `json:"assigned_to"`
	PurchaseDate   string `json:"purchase_date"`
	WarrantyExpiry string `json:"warranty_expiry"`
	IPAddress      string `json:"ip_address"`
	MACAddress     string `json:"mac_address"`
	Notes          string `json:"notes"`
}

// InitAssets registers the assets command group on the root command.
func InitAssets(rootCmd *cobra.Command) {
	assetsCmd := &cobra.Command{
		Use:   "assets",
		Short: "Manage assets",
	}

	assetsCmd.AddCommand(
		listCmd(),
		createCmd(),
		deleteCmd(),
		statsCmd(),
	)

	rootCmd.AddCommand(assetsCmd)
}

// listQuery builds the query string for the list endpoint. Empty filters are
// omitted entirely.
func listQuery(search, status, typ string) string {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if status != "" {
		q.Set("status", status)
	}
	if typ != "" {
		q.Set("type", typ)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// assetRows converts assets to table rows for rendering.
func assetRows(list []asset) [][]interface{} {
	rows := make([][]interface{}, 0, len(list))
	for _, a := range list {
		rows = append(rows, []interface{}{
			a.ID, a.Name, a.Type, a.SerialNumber, a.Status, a.Location, a.AssignedTo,
		})
	}
	return rows
}

func listCmd() *cobra.Command {
	var search, status, typ string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			var list []asset
			path := "/api/assets" + listQuery(search, status, typ)
			if err := doRequest(http.MethodGet, path, nil, &list); err != nil {
				return err
			}

			output.RenderTable(
				[]string{"ID", "Name", "Type", "Serial", "Status", "Location", "Assigned To"},
				assetRows(list),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "substring match on name, serial, manufacturer, model")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (active, inactive, maintenance, retired)")
	cmd.Flags().StringVar(&typ, "type", "", "filter by asset type")

	return cmd
}

func createCmd() *cobra.Command {
	var in asset

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			var created asset
			if err := doRequest(http.MethodPost, "/api/assets", in, &created); err != nil {
				return err
			}
			fmt.Printf("Created asset %d (%s)\n", created.ID, created.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "asset name (required)")
	cmd.Flags().StringVar(&in.Type, "type", "", "asset type, e.g. laptop, server, network (required)")
	cmd.Flags().StringVar(&in.SerialNumber, "serial", "", "serial number")
	cmd.Flags().StringVar(&in.Manufacturer, "manufacturer", "", "manufacturer")
	cmd.Flags().StringVar(&in.Model, "model", "", "model")
	cmd.Flags().StringVar(&in.Status, "status", "active", "status (active, inactive, maintenance, retired)")
	cmd.Flags().StringVar(&in.Location, "location", "", "location")
	cmd.Flags().StringVar(&in.AssignedTo, "assigned-to", "", "person the asset is assigned to")
	cmd.Flags().StringVar(&in.PurchaseDate, "purchase-date", "", "purchase date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.WarrantyExpiry, "warranty-expiry", "", "warranty expiry (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.IPAddress, "ip", "", "IP address")
	cmd.Flags().StringVar(&in.MACAddress, "mac", "", "MAC address")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "free-text notes")

	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an asset (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out struct {
				Message string `json:"message"`
			}
			if err := doRequest(http.MethodDelete, "/api/assets/"+args[0], nil, &out); err != nil {
				return err
			}
			fmt.Println(out.Message)
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show asset counts by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			var stats struct {
				Total       int `json:"total"`
				Active      int `json:"active"`
				Inactive    int `json:"inactive"`
				Maintenance int `json:"maintenance"`
				Retired     int `json:"retired"`
			}
			if err := doRequest(http.MethodGet, "/api/assets/stats/overview", nil, &stats); err != nil {
				return err
			}

			output.RenderTable(
				[]string{"Total", "Active", "Inactive", "Maintenance", "Retired"},
				[][]interface{}{{stats.Total, stats.Active, stats.Inactive, stats.Maintenance, stats.Retired}},
			)
			return nil
		},
	}
}

// doRequest performs an authenticated API call and decodes the JSON response
// into out. Non-2xx responses are returned as errors with the server's body.
func doRequest(method, path string, payload interface{}, out interface{}) error {
	token, err := config.ReadToken()
	if err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, config.APIURL()+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (%d): %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
