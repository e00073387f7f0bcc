// Package inttest enables writing of integration tests. It starts Docker containers for PostgreSQL, Redis,
// RabbitMQ, S3 (using localstack) and MinIO, and serves gin routes through an httptest server. Every setup
// function waits for its container to be ready, registers cleanup with the test and returns a client ready to use.
package inttest
