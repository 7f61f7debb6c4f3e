package rabbitmq_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/adapters/out/rabbitmq"
	"storefront/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const exchange = "storefront.orders.test"

type PublisherIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	conn      *amqp.Connection
	publisher *rabbitmq.Publisher
}

func (suite *PublisherIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "rabbitmq:3.13-alpine",
			ExposedPorts: []string{"5672/tcp"},
			WaitingFor:   wait.ForLog("Server startup complete").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	host, err := container.Host(ctx)
	suite.Require().NoError(err)
	port, err := container.MappedPort(ctx, "5672")
	suite.Require().NoError(err)

	conn, err := amqp.Dial(fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port()))
	suite.Require().NoError(err)
	suite.conn = conn

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	suite.publisher, err = rabbitmq.NewPublisher(conn, exchange, logger)
	suite.Require().NoError(err)
}

func (suite *PublisherIntegrationTestSuite) TearDownSuite() {
	if suite.conn != nil {
		_ = suite.conn.Close()
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PublisherIntegrationTestSuite) TestPublishStatusChanged_RoutesByStatus() {
	ctx := suite.T().Context()

	ch, err := suite.conn.Channel()
	suite.Require().NoError(err)
	defer ch.Close()

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	suite.Require().NoError(err)
	suite.Require().NoError(ch.QueueBind(q.Name, rabbitmq.RoutingKey("shipped"), exchange, false, nil))

	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.publisher.PublishStatusChanged(ctx, ports.OrderStatusChangedEvent{
		OrderID: "o-1", Status: "cancelled", PreviousStatus: "pending", OccurredAt: time.Now(),
	}))
	suite.Require().NoError(suite.publisher.PublishStatusChanged(ctx, ports.OrderStatusChangedEvent{
		OrderID: "o-2", Status: "shipped", PreviousStatus: "processing", OccurredAt: time.Now(),
	}))

	select {
	case d := <-deliveries:
		var got ports.OrderStatusChangedEvent
		suite.Require().NoError(json.Unmarshal(d.Body, &got))
		suite.Equal("o-2", got.OrderID)
		suite.Equal("processing", got.PreviousStatus)
	case <-time.After(5 * time.Second):
		suite.FailNow("no delivery for shipped")
	}

	select {
	case d := <-deliveries:
		suite.Failf("unexpected delivery", "routing key %s", d.RoutingKey)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestPublisherIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PublisherIntegrationTestSuite))
}
