package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	commonmqtt "github.com/brandonbohn/adebackend/common/mqtt"
	"github.com/brandonbohn/adebackend/internal/notify"

	"github.com/spf13/cobra"
)

func alertsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Admin alert topic tools",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "watch",
		Short: "Print admin alerts as they are published",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			brokerCfg := a.cfg.MQTT.Broker
			brokerCfg.ClientID += "-admin-watch"
			client, err := commonmqtt.NewClient(&brokerCfg, a.logger)
			if err != nil {
				return err
			}
			defer client.Disconnect()

			var mu sync.Mutex
			out := cmd.OutOrStdout()
			if err := client.Subscribe(a.cfg.MQTT.AlertTopic, brokerCfg.QoS, func(_ string, payload []byte) error {
				mu.Lock()
				defer mu.Unlock()
				return printAlert(out, payload)
			}); err != nil {
				return err
			}
			fmt.Fprintf(out, "watching %s (ctrl-c to stop)\n", a.cfg.MQTT.AlertTopic)
			<-cmd.Context().Done()
			return nil
		},
	})
	return cmd
}

// printAlert writes one alert as "time  kind  title [reference]".
func printAlert(out io.Writer, payload []byte) error {
	var alert notify.Alert
	if err := json.Unmarshal(payload, &alert); err != nil {
		return fmt.Errorf("invalid alert payload: %w", err)
	}
	if alert.Kind == "" {
		return errors.New("invalid alert payload: missing kind")
	}
	line := fmt.Sprintf("%s  %-16s  %s", alert.OccurredAt.Format("2006-01-02 15:04:05"), alert.Kind, alert.Title)
	if alert.Reference != "" {
		line += " [" + alert.Reference + "]"
	}
	_, err := fmt.Fprintln(out, line)
	return err
}
