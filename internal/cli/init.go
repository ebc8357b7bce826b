package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AI2HU/pepychart/internal/chart"
	"github.com/AI2HU/pepychart/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize pepychart configuration",
	Long:  `Interactive wizard to set up the pepy.tech API key and chart defaults.`,
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("🚀 Welcome to pepychart setup")
	fmt.Println("=============================")
	fmt.Println()

	configPath := cfgFile
	if config.Exists(configPath) {
		fmt.Printf("Configuration file already exists at: %s\n", configPath)
		confirmed, err := promptYesNo(reader, "Do you want to overwrite it? (y/N): ")
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Setup cancelled.")
			return nil
		}
	}

	newCfg := config.DefaultConfig()

	fmt.Println("\n🔑 pepy.tech API")
	fmt.Println("----------------")
	fmt.Printf("Leave the key empty to rely on $%s instead.\n", config.EnvAPIKey)

	apiKey, err := promptOptional(reader, "API key: ", "")
	if err != nil {
		return err
	}
	newCfg.APIKey = apiKey

	fmt.Println("\n📈 Chart Defaults")
	fmt.Println("-----------------")

	color, err := promptWithRetry(reader, fmt.Sprintf("Color [%s]: ", newCfg.Chart.Color), func(input string) (string, error) {
		if input == "" {
			return newCfg.Chart.Color, nil
		}
		if _, err := chart.ParseColor(input); err != nil {
			return "", err
		}
		return input, nil
	})
	if err != nil {
		return err
	}
	newCfg.Chart.Color = color

	window, err := promptNumber(reader, fmt.Sprintf("Rolling window in days, 0 to disable [%d]: ", newCfg.Chart.RollingWindow), newCfg.Chart.RollingWindow, 0, 365)
	if err != nil {
		return err
	}
	newCfg.Chart.RollingWindow = window

	fontSize, err := promptNumber(reader, fmt.Sprintf("Title font size [%d]: ", newCfg.Chart.TitleFontSize), newCfg.Chart.TitleFontSize, newCfg.Chart.AxisFontSizeAdj+1, 72)
	if err != nil {
		return err
	}
	newCfg.Chart.TitleFontSize = fontSize

	fmt.Println("\n💾 Saving configuration...")
	if err := newCfg.Save(configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("✅ Configuration saved to: %s\n", configPath)

	fmt.Println("\n📋 Configuration Summary")
	fmt.Println("========================")
	fmt.Printf("API key: %s\n", maskSensitiveData(newCfg.APIKey, "*"))
	fmt.Printf("Color: %s\n", newCfg.Chart.Color)
	fmt.Printf("Rolling window: %d\n", newCfg.Chart.RollingWindow)
	fmt.Printf("Title font size: %d\n", newCfg.Chart.TitleFontSize)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  pepychart stats -p requests")
	fmt.Println("  pepychart create -p requests -i -o requests.png")

	return nil
}

// promptNumber prompts for a number within [min, max], Enter keeps the default
func promptNumber(reader *bufio.Reader, prompt string, defaultValue, min, max int) (int, error) {
	result, err := promptWithRetry(reader, prompt, func(input string) (string, error) {
		if input == "" {
			return strconv.Itoa(defaultValue), nil
		}
		num, err := validateNumber(input, min, max)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(num), nil
	})
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(result)
}
