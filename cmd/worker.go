/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/nsmthethwa44/Technova-API/config"
	"github.com/nsmthethwa44/Technova-API/internal/db"
	"github.com/nsmthethwa44/Technova-API/internal/events"
	"github.com/nsmthethwa44/Technova-API/internal/mq"
	"github.com/nsmthethwa44/Technova-API/internal/services"
	"github.com/nsmthethwa44/Technova-API/internal/store"
	"github.com/nsmthethwa44/Technova-API/pkg/logger"
	"github.com/spf13/cobra"
)

// workerCmd represents the worker command. The worker consumes payment
// events published by checkout and marks the payer's pending orders Paid.
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Runs the order events worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "dev"})

		ctx := cmd.Context()

		dbConn, err := db.Open(ctx, cfg)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer func() {
			_ = dbConn.Close()
		}()

		broker, err := mq.NewFromConfig(ctx, cfg.Broker)
		if err != nil {
			return fmt.Errorf("connect broker: %w", err)
		}
		defer func() {
			_ = broker.Close()
		}()

		orderService := services.NewOrderService(store.NewOrderRepository(dbConn), store.NewPaymentRepository(dbConn), broker)
		consumer := events.NewPaymentConsumer(orderService, log)

		log.Info().Str("topic", events.TopicPaymentCaptured).Msg("worker started")
		if err := broker.Subscribe(ctx, events.TopicPaymentCaptured, consumer.Handle); err != nil {
			fmt.Fprintf(os.Stderr, "worker stopped: %v\n", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
