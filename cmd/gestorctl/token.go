package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jhoicas/gestor-notas-api/pkg/jwt"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Genera un JWT de desarrollo firmado con JWT_SECRET",
	Example: `  gestorctl token --user 6f1c0c9e-3b7e-4f7e-9a51-1f0d2f3b8a10 --minutes 120`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		minutes, _ := cmd.Flags().GetInt("minutes")
		if _, err := uuid.Parse(userID); err != nil {
			return fmt.Errorf("--user debe ser un UUID: %w", err)
		}
		tok, err := jwt.Generate(cfg.JWT.Secret, userID, cfg.JWT.Issuer, minutes)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("user", "", "UUID del usuario (sub)")
	tokenCmd.Flags().Int("minutes", 60, "validez en minutos")
	_ = tokenCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(tokenCmd)
}
