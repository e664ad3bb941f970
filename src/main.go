package main

import (
	"foreign-call-resolver/src/config"
	"foreign-call-resolver/src/foreigncall"
	"foreign-call-resolver/src/logger"
	"foreign-call-resolver/src/queues"
	"foreign-call-resolver/src/rpc"
	"foreign-call-resolver/src/utils"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger.InitDefaultLogger(logger.GlobalLoggerConfig{
		Args: []logger.LoggerArg{
			{Key: "application", Value: "foreign-call-resolver"},
		},
	})
	log := logger.Default().WithLevel(cfg.LogLevel)

	var auditPublisher queues.Publisher
	if cfg.MessagingEnabled() {
		conn, err := queues.ConnectToRabbitmq(cfg.RabbitmqURL)
		utils.FailOnError(err, "Failed to connect to RabbitMQ after retries")
		defer conn.Close()

		ch, err := conn.Channel()
		utils.FailOnError(err, "Failed to open a channel")
		defer ch.Close()

		err = queues.CreateNewExchange(ch, cfg.AuditExchange, queues.ExchangeTopic)
		utils.FailOnError(err, "Failed to declare the audit exchange")

		publisher := queues.NewPublisher(ch, cfg.AuditExchange, cfg.AuditRoutingKey)
		auditPublisher = publisher
		logger.AddSink(log, queues.CreateLoggerSink(publisher))

		log.Infof("Audit trail enabled on exchange %q", cfg.AuditExchange)
	}

	dispatcher := foreigncall.NewDispatcher(log)
	server := rpc.NewServer(dispatcher, log, auditPublisher)

	log.Infof("Server is running on %s", cfg.Addr())
	if err := server.Run(cfg.Addr()); err != nil {
		log.Fatal(err, "RPC server terminated")
	}
}
