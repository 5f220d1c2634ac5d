package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type client struct {
	BaseURL   string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(method, path string, body []byte) (int, []byte, error) {
	u := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(method, u, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) print(status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
	}
	if len(body) > 0 {
		fmt.Println(string(body))
	} else {
		fmt.Printf("status=%d\n", status)
	}
}

// challengePath arma /oauth2/auth/requests/{flow}[/{verb}]?{flow}_challenge=...
func challengePath(flow, verb, challenge string) string {
	p := "/oauth2/auth/requests/" + flow
	if verb != "" {
		p += "/" + verb
	}
	return p + "?" + flow + "_challenge=" + url.QueryEscape(challenge)
}

func validFlow(flow string) error {
	if flow != "login" && flow != "consent" {
		return fmt.Errorf("--flow debe ser login|consent, recibí %q", flow)
	}
	return nil
}

func main() {
	var (
		adminURL = envOr("HYDRA_ADMIN_URL", "http://localhost:4445")
		out      = envOr("GRANTCTL_OUT", "text")
		timeout  = 30 * time.Second
	)

	root := &cobra.Command{
		Use:   "grantctl",
		Short: "CLI operativa contra el admin API del provider OAuth2 (login/consent)",
	}

	root.PersistentFlags().StringVar(&adminURL, "admin-url", adminURL, "URL base del admin API (env HYDRA_ADMIN_URL)")
	root.PersistentFlags().StringVar(&out, "out", out, "Formato de salida: json|text")

	cl := &client{BaseURL: adminURL, OutFormat: out, HTTP: &http.Client{Timeout: timeout}}
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cl.BaseURL = adminURL
		cl.OutFormat = out
	}

	challengeCmd := &cobra.Command{
		Use:   "challenge",
		Short: "Inspeccionar y resolver challenges pendientes",
	}

	// challenge get
	var getFlow string
	getCmd := &cobra.Command{
		Use:   "get <challenge>",
		Short: "Traer el estado de un challenge pendiente",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validFlow(getFlow); err != nil {
				return err
			}
			status, body, err := cl.do("GET", challengePath(getFlow, "", args[0]), nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("get fallo: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}
	getCmd.Flags().StringVar(&getFlow, "flow", "login", "Tipo de challenge: login|consent")

	// challenge accept
	var (
		accFlow    string
		accSubject string
		accScopes  []string
		accFor     int
	)
	acceptCmd := &cobra.Command{
		Use:   "accept <challenge>",
		Short: "Aceptar un challenge a mano (destrabar un flujo colgado)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validFlow(accFlow); err != nil {
				return err
			}
			var payload map[string]any
			switch accFlow {
			case "login":
				if accSubject == "" {
					return fmt.Errorf("--subject es requerido para aceptar un login challenge")
				}
				payload = map[string]any{"subject": accSubject}
			case "consent":
				payload = map[string]any{
					"grant_scope": accScopes,
					"session":     map[string]any{"access_token": map[string]any{}, "id_token": map[string]any{}},
				}
			}
			if accFor > 0 {
				payload["remember"] = true
				payload["remember_for"] = accFor
			}
			b, _ := json.Marshal(payload)
			status, body, err := cl.do("PUT", challengePath(accFlow, "accept", args[0]), b)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("accept fallo: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}
	acceptCmd.Flags().StringVar(&accFlow, "flow", "login", "Tipo de challenge: login|consent")
	acceptCmd.Flags().StringVar(&accSubject, "subject", "", "Subject a afirmar (solo login)")
	acceptCmd.Flags().StringSliceVar(&accScopes, "grant-scope", nil, "Scopes a otorgar (solo consent, repetible)")
	acceptCmd.Flags().IntVar(&accFor, "remember-for", 0, "Segundos de remember (0 = no recordar)")

	// challenge reject
	var (
		rejFlow string
		rejErr  string
		rejDesc string
	)
	rejectCmd := &cobra.Command{
		Use:   "reject <challenge>",
		Short: "Rechazar un challenge a mano",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validFlow(rejFlow); err != nil {
				return err
			}
			payload := map[string]any{
				"error":             rejErr,
				"error_description": rejDesc,
			}
			b, _ := json.Marshal(payload)
			status, body, err := cl.do("PUT", challengePath(rejFlow, "reject", args[0]), b)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("reject fallo: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}
	rejectCmd.Flags().StringVar(&rejFlow, "flow", "login", "Tipo de challenge: login|consent")
	rejectCmd.Flags().StringVar(&rejErr, "error", "access_denied", "Código de error OAuth2")
	rejectCmd.Flags().StringVar(&rejDesc, "error-description", "The resource owner denied the request", "Descripción del error")

	challengeCmd.AddCommand(getCmd)
	challengeCmd.AddCommand(acceptCmd)
	challengeCmd.AddCommand(rejectCmd)
	root.AddCommand(challengeCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
