package main

import (
	"fmt"
	"os"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/linkedin/goavro/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"skconsole/config"
	"skconsole/skadmin"
)

type generationData struct {
	subject       string
	compatibility skadmin.CompatibilityType
	// schemas are registered in order, the first one creates the subject
	schemas []string
}

var genData = []generationData{
	{
		"dev.finance.invoice-InvoiceCreated",
		skadmin.CompatibilityBackward,
		[]string{`
		{
			"type": "record",
			"name": "InvoiceCreated",
			"namespace": "io.skconsole.invoice",
			"doc": "Schema for the InvoiceCreated event.",
			"fields": [
				{"name": "id", "type": "string", "doc": "Unique identifier for the invoice."},
				{"name": "customerId", "type": "string", "doc": "Unique identifier for the customer."},
				{"name": "amount", "type": {"type": "bytes", "logicalType": "decimal", "precision": 4, "scale": 2}, "doc": "Total amount of the invoice."},
				{"name": "currency", "type": "string", "doc": "Currency of the invoice amount."},
				{"name": "issueDate", "type": "string", "doc": "Date when the invoice was issued, in ISO 8601 format."}
			]
		}`, `
		{
			"type": "record",
			"name": "InvoiceCreated",
			"namespace": "io.skconsole.invoice",
			"doc": "Schema for the InvoiceCreated event.",
			"fields": [
				{"name": "id", "type": "string", "doc": "Unique identifier for the invoice."},
				{"name": "customerId", "type": "string", "doc": "Unique identifier for the customer."},
				{"name": "amount", "type": {"type": "bytes", "logicalType": "decimal", "precision": 4, "scale": 2}, "doc": "Total amount of the invoice."},
				{"name": "currency", "type": "string", "doc": "Currency of the invoice amount."},
				{"name": "issueDate", "type": "string", "doc": "Date when the invoice was issued, in ISO 8601 format."},
				{"name": "dueDate", "type": ["null", "string"], "default": null, "doc": "Date when the invoice is due."}
			]
		}`},
	},
	{
		"dev.finance.payment-PaymentProcessed",
		skadmin.CompatibilityFull,
		[]string{`
		{
			"type": "record",
			"name": "PaymentProcessed",
			"namespace": "io.skconsole.payment",
			"doc": "Schema for the PaymentProcessed event.",
			"fields": [
				{"name": "id", "type": "string", "doc": "Unique identifier for the payment."},
				{"name": "invoiceId", "type": "string", "doc": "Unique identifier for the associated invoice."},
				{"name": "paymentDate", "type": "string", "doc": "Date when the payment was made, in ISO 8601 format."},
				{"name": "method", "type": "string", "doc": "Payment method used (e.g., 'Credit Card', 'Bank Transfer')."}
			]
		}`},
	},
	{
		"dev.order.shipment-ShipmentCreated",
		skadmin.CompatibilityForwardTransitive,
		[]string{`
		{
			"type": "record",
			"name": "ShipmentCreated",
			"namespace": "io.skconsole.order",
			"doc": "Schema for the ShipmentCreated event.",
			"fields": [
				{"name": "id", "type": "string", "doc": "Unique identifier for the shipment."},
				{"name": "orderId", "type": "string", "doc": "Unique identifier for the order."},
				{"name": "carrier", "type": "string", "doc": "Carrier responsible for the shipment."},
				{"name": "trackingNumber", "type": "string", "doc": "Tracking number for the shipment."}
			]
		}`},
	},
	{
		"dev.product.stock-StockUpdated",
		skadmin.CompatibilityNone,
		[]string{`
		{
			"type": "record",
			"name": "StockUpdated",
			"namespace": "io.skconsole.product",
			"fields": [
				{"name": "productId", "type": "string"},
				{"name": "quantity", "type": "int"}
			]
		}`, `
		{
			"type": "record",
			"name": "StockUpdated",
			"namespace": "io.skconsole.product",
			"fields": [
				{"name": "productId", "type": "string"},
				{"name": "quantity", "type": "long"}
			]
		}`, `
		{
			"type": "record",
			"name": "StockUpdated",
			"namespace": "io.skconsole.product",
			"fields": [
				{"name": "productId", "type": "string"},
				{"name": "quantity", "type": "long"},
				{"name": "warehouse", "type": "string", "default": "main"}
			]
		}`},
	},
}

// fillers are small subjects that make the list span several pages.
func fillers(count int) []generationData {
	var data []generationData
	for i := 0; i < count; i++ {
		data = append(data, generationData{
			subject:       fmt.Sprintf("dev.generated.subject-%02d", i),
			compatibility: skadmin.CompatibilityBackward,
			schemas:       []string{fmt.Sprintf(`{"type":"record","name":"Generated%02d","fields":[{"name":"id","type":"string"}]}`, i)},
		})
	}
	return data
}

func main() {
	var url string
	var fillerCount int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Seed a registry with sample subjects",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := skadmin.New(&config.RegistryConfig{Name: "generate", Url: url})
			if err != nil {
				return err
			}
			existing, err := listSubjects(client)
			if err != nil {
				return err
			}
			for _, gd := range append(genData, fillers(fillerCount)...) {
				if slices.Contains(existing, gd.subject) {
					fmt.Printf("Subject %s already exists\n", gd.subject)
					continue
				}
				if err := generate(client, gd); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "http://localhost:8990", "registry url")
	cmd.Flags().IntVar(&fillerCount, "fillers", 25, "number of filler subjects")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func generate(client skadmin.Client, gd generationData) error {
	for _, schema := range gd.schemas {
		if _, err := goavro.NewCodec(schema); err != nil {
			return errors.Wrapf(err, "invalid schema for %s", gd.subject)
		}
	}

	if err := registerSubject(client, gd); err != nil {
		return err
	}
	for _, schema := range gd.schemas[1:] {
		if err := registerSchemaVersion(client, gd.subject, schema); err != nil {
			return err
		}
	}
	fmt.Printf("Registered %s with %d version(s)\n", gd.subject, len(gd.schemas))
	return nil
}

func listSubjects(client skadmin.Client) ([]string, error) {
	msg := client.ListSubjects().(skadmin.SubjectListingStartedMsg)
	switch msg := msg.AwaitCompletion().(type) {
	case skadmin.SubjectsListedMsg:
		return msg.Subjects, nil
	case skadmin.SubjectListingErrorMsg:
		return nil, errors.Wrap(msg.Err, "failed to list subjects")
	}
	return nil, nil
}

func registerSubject(client skadmin.Client, gd generationData) error {
	msg := client.RegisterSubject(skadmin.SubjectCreationDetails{
		Subject:           gd.subject,
		Schema:            gd.schemas[0],
		SchemaType:        skadmin.Avro,
		CompatibilityType: gd.compatibility,
	}).(skadmin.SubjectRegistrationStartedMsg)

	return failed(msg.AwaitCompletion())
}

func registerSchemaVersion(client skadmin.Client, subject string, schema string) error {
	msg := client.RegisterSchemaVersion(skadmin.SchemaVersionDetails{
		Subject:    subject,
		Schema:     schema,
		SchemaType: skadmin.Avro,
	}).(skadmin.SchemaVersionRegistrationStartedMsg)

	return failed(msg.AwaitCompletion())
}

func failed(msg tea.Msg) error {
	switch msg := msg.(type) {
	case skadmin.SubjectRegistrationErrMsg:
		return errors.Wrapf(msg.Err, "failed to register subject %s", msg.Details.Subject)
	case skadmin.SchemaVersionRegistrationErrMsg:
		return errors.Wrapf(msg.Err, "failed to register schema for %s", msg.Subject)
	}
	return nil
}
