// Command verifier drives a verification from the terminal: it queries the
// platform API with the ID number, compares the resolved record against the
// asserted name and digit locally, and on a confirmed match with a registered
// contact walks the disclosure flow for the secret code. The asserted name
// never leaves the process; only the ID number is sent to the API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/KiwiAmenazante/DREMO/internal/core/domain"
	"github.com/KiwiAmenazante/DREMO/internal/disclosure"
	"github.com/KiwiAmenazante/DREMO/internal/verification"
	client "github.com/KiwiAmenazante/DREMO/pkg/http"
)

var (
	apiBase     string
	dni         string
	givenName   string
	surname     string
	digit       string
	reveal      bool
	copyToClipb bool
)

var (
	dniRe   = regexp.MustCompile(`^\d{8}$`)
	digitRe = regexp.MustCompile(`^\d$`)
)

type validateResponse struct {
	Success        bool                  `json:"success"`
	Message        string                `json:"message"`
	DNI            string                `json:"dni"`
	IdentitySource domain.IdentitySource `json:"identitySource"`
	Identity       domain.IdentityFields `json:"identity"`
	Directory      domain.DirectoryMatch `json:"directory"`
}

func main() {
	root := &cobra.Command{
		Use:           "verifier",
		Short:         "Verify an identity against the DREMO platform",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          run,
	}

	root.Flags().StringVar(&apiBase, "api", "http://localhost:8080", "base URL of the platform API")
	root.Flags().StringVar(&dni, "dni", "", "8-digit national ID number")
	root.Flags().StringVar(&givenName, "name", "", "given name as registered")
	root.Flags().StringVar(&surname, "surname", "", "surname(s) as registered")
	root.Flags().StringVar(&digit, "digit", "", "optional single verification digit")
	root.Flags().BoolVar(&reveal, "reveal", false, "show the secret code in plain text")
	root.Flags().BoolVar(&copyToClipb, "copy", false, "copy the secret code to the clipboard")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	asserted := verification.AssertedIdentity{
		IDNumber:          strings.TrimSpace(dni),
		GivenName:         strings.TrimSpace(givenName),
		Surname:           strings.TrimSpace(surname),
		VerificationDigit: strings.TrimSpace(digit),
	}

	if !dniRe.MatchString(asserted.IDNumber) {
		return fmt.Errorf("the DNI must be exactly 8 digits")
	}
	if asserted.GivenName == "" {
		return fmt.Errorf("a given name is required")
	}
	if asserted.Surname == "" {
		return fmt.Errorf("at least one surname is required")
	}
	if asserted.VerificationDigit != "" && !digitRe.MatchString(asserted.VerificationDigit) {
		return fmt.Errorf("the verification digit must be a single digit")
	}

	resp, err := validate(cmd.Context(), asserted.IDNumber)
	if err != nil {
		return err
	}

	eval := verification.Evaluate(asserted,
		domain.ResolvedIdentity{Source: resp.IdentitySource, Fields: resp.Identity},
		resp.Directory)

	printResult(eval, resp)

	if eval.Verdict == verification.VerdictConfirmedWithContact && resp.Directory.Secret != nil {
		discloseSecret(eval.Verdict, resp.Directory.Secret)
	}
	return nil
}

func validate(ctx context.Context, idNumber string) (*validateResponse, error) {
	payload, err := json.Marshal(map[string]string{"dni": idNumber})
	if err != nil {
		return nil, err
	}

	url := strings.TrimRight(apiBase, "/") + "/api/validate-dni"
	httpResp, err := client.DefaultHTTPClientWithRetry.Post(ctx, url, payload, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot reach the platform API: %w", err)
	}

	var resp validateResponse
	if err := json.Unmarshal(httpResp.Body, &resp); err != nil {
		return nil, fmt.Errorf("unexpected API response (HTTP %d)", httpResp.StatusCode)
	}
	if !httpResp.OK() || !resp.Success {
		if resp.Message != "" {
			return nil, fmt.Errorf("verification failed: %s", resp.Message)
		}
		return nil, fmt.Errorf("verification failed (HTTP %d)", httpResp.StatusCode)
	}
	return &resp, nil
}

func printResult(eval verification.Evaluation, resp *validateResponse) {
	sourceLabel := "primary provider"
	if resp.IdentitySource == domain.SourceFallback {
		sourceLabel = "fallback provider"
	}
	fmt.Printf("source: %s\n", sourceLabel)

	if !eval.Matched() {
		if eval.DigitChecked {
			color.Red("verification not confirmed: the asserted data does not match the record")
		} else {
			color.Red("verification not confirmed: the asserted data does not match the record (no verification digit was available)")
		}
	} else if eval.Verdict == verification.VerdictConfirmedWithContact {
		color.Green("identity confirmed and a registered contact was found")
		if resp.Directory.MaskedContact != "" {
			fmt.Printf("contact on file: %s\n", resp.Directory.MaskedContact)
		}
	} else {
		color.Yellow("identity confirmed, but no registered contact starts with this DNI")
	}

	if eval.DirectoryReason != "" {
		fmt.Printf("directory note: %s\n", eval.DirectoryReason)
	}
}

func discloseSecret(verdict verification.Verdict, secret *string) {
	controller := disclosure.NewController(disclosure.SystemClipboard{})
	controller.Unlock(verdict, secret)
	controller.RequestDisclosure()

	if reveal {
		controller.ToggleReveal()
	}
	fmt.Printf("secret code: %s\n", controller.Display())

	if copyToClipb {
		controller.CopyToClipboard()
		if notice := controller.Notice(); notice != "" {
			fmt.Println(notice)
		}
		if value, buffered := controller.Fallback().Value(); buffered {
			fmt.Printf("clipboard unavailable, select manually: %s\n", value)
		}
	}
}
