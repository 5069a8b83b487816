package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Embedded default configuration, used when no .subscan.yaml is found.
const defaultConfigYAML = `
rules:
  line_tolerance: 4.0
  default_category: uncategorized
  suppress:
    - name: balance
      pattern: (?i)\b(saldo|balance|kontostand|zwischensumme|summe|uebertrag|übertrag|total)\b
    - name: account-number
      pattern: (?i)\b(iban|bic|kartennummer|kontonummer|card\s?number|account\s?number)\b
    - name: posting-metadata
      pattern: (?i)\b(buchungstag|wertstellung|valuta|buchungsdatum|booking\s?date|value\s?date|posting\s?date)\b
  cleaners:
    - name: dates
      pattern: \b\d{1,2}[./-]\d{1,2}[./-]\d{2,4}\b|\b\d{4}-\d{2}-\d{2}\b
    - name: iban
      pattern: \b[A-Z]{2}\d{2}[A-Za-z0-9]{11,30}\b
    - name: currency
      pattern: (?i)\b(EUR|USD|GBP|CHF)\b|[€$£]
    - name: amounts
      pattern: '[-+]?\d[\d.,]*'
    - name: separators
      pattern: '[.,/\\:;|*#_''"()\[\]+-]+'
  forced_merchants:
    - pattern: (?i)\bRSG\s*GROUP\b
      name: John Reed
  csv:
    name_keywords: [description, beschreibung, verwendungszweck, buchungstext, empfänger, payee, merchant, name]
    amount_keywords: [amount, betrag, umsatz, value, debit]
cancel:
  search_url: https://www.google.com/search?q=
  links:
    - pattern: (?i)netflix
      url: https://www.netflix.com/cancelplan
      label: Netflix
    - pattern: (?i)spotify
      url: https://www.spotify.com/account/subscription/
      label: Spotify
    - pattern: (?i)amazon|prime
      url: https://www.amazon.com/mc/pipelines/cancellation
      label: Amazon Prime
    - pattern: (?i)disney
      url: https://www.disneyplus.com/account
      label: Disney+
    - pattern: (?i)john\s*reed|rsg\s*group
      url: https://www.johnreed.fitness/faq
      label: John Reed`

var (
	cfgFile string
	verbose bool
	rootCmd = &cobra.Command{
		Use:   "subscan [filename]",
		Short: "Extract subscription candidates from bank statements",
		Long: `subscan turns bank and card statements (.pdf or .csv) into a
deduplicated list of recurring-charge candidates, reconciles them
against subscriptions you already track, and walks you through a
keep/cancel review.`,
		Args: cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 1 {
				viper.Set("target", args[0])
				scanHandler(scanCmd, []string{})
				return
			}
			cmd.Help()
		},
	}
)

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default is ./.subscan.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

func initLogging() {
	if !verbose {
		log.SetOutput(io.Discard)
	} else {
		log.SetFlags(log.Ltime | log.Lmsgprefix)
		log.SetPrefix("INFO: ")
	}
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Add config paths in order of priority
		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".subscan")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file found, use embedded default configuration
			if err := viper.ReadConfig(bytes.NewBufferString(defaultConfigYAML)); err != nil {
				fmt.Printf("Error loading embedded configuration: %v\n", err)
				os.Exit(1)
			}
		} else {
			fmt.Printf("Error reading config file: %v\n", err)
			os.Exit(1)
		}
	}
}
