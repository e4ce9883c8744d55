package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/qr"
)

type VerifyResult struct {
	Valid        bool   `json:"valid"`
	Error        string `json:"error,omitempty"`
	Identifier   string `json:"identifier,omitempty"`
	Kind         string `json:"kind,omitempty"`
	OrderID      string `json:"order_id,omitempty"`
	TierID       string `json:"tier_id,omitempty"`
	Unit         int    `json:"unit,omitempty"`
	AssignmentID string `json:"assignment_id,omitempty"`
	BundleID     string `json:"bundle_id,omitempty"`
}

// NewQRCommand groups payload tooling. The secret defaults to QR_SECRET.
func NewQRCommand(opts *RootOptions) *cobra.Command {
	var secret string

	cmd := &cobra.Command{
		Use:   "qr",
		Short: "Sign or verify ticket payloads",
	}
	cmd.PersistentFlags().StringVar(&secret, "secret", "", "signing secret (default $QR_SECRET)")

	signer := func() (*qr.Signer, error) {
		if secret == "" {
			secret = os.Getenv("QR_SECRET")
		}
		return qr.NewSigner(secret)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "sign <identifier>",
		Short: "Sign an identifier such as u~order~tier~1, a~assignment or g~bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := signer()
			if err != nil {
				return err
			}
			subject, err := qr.ParseIdentifier(args[0])
			if err != nil {
				return fmt.Errorf("identifier %q: %w", args[0], err)
			}
			payload := s.Sign(subject)
			return write(cmd.OutOrStdout(), opts.Format, map[string]string{"payload": payload}, payload)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "verify <payload>",
		Short: "Check a payload signature and decode its identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := signer()
			if err != nil {
				return err
			}

			subject, verr := s.Verify(args[0])
			if verr != nil {
				result := VerifyResult{Valid: false, Error: verr.Error()}
				if err := write(cmd.OutOrStdout(), opts.Format, result, "invalid: "+verr.Error()); err != nil {
					return err
				}
				return verr
			}

			result := VerifyResult{
				Valid:        true,
				Identifier:   subject.Identifier(),
				Kind:         string(subject.Kind),
				OrderID:      subject.OrderID,
				TierID:       subject.TierID,
				Unit:         subject.Unit,
				AssignmentID: subject.AssignmentID,
				BundleID:     subject.BundleID,
			}
			return write(cmd.OutOrStdout(), opts.Format, result, "valid: "+result.Identifier)
		},
	})

	return cmd
}
