package main

import (
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigateway"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

type ShuttleStackProps struct {
	awscdk.StackProps
	PostgresDSN string
	LogLevel    string
}

func NewShuttleStack(scope constructs.Construct, id string, props *ShuttleStackProps) awscdk.Stack {
	if props == nil {
		props = &ShuttleStackProps{}
	}
	stackProps := props.StackProps

	stack := awscdk.NewStack(scope, &id, &stackProps)

	env := map[string]*string{
		"APP":                     jsii.String("prod"),
		"LOG_LEVEL":               jsii.String(valueOr(props.LogLevel, "info")),
		"LOG_FORMAT":              jsii.String("json"),
		"POSTGRES_MIGRATIONS_DIR": jsii.String("migrations/postgres"),
	}
	if props.PostgresDSN != "" {
		env["POSTGRES_DSN"] = jsii.String(props.PostgresDSN)
	}

	lambdaFn := awslambda.NewFunction(stack, jsii.String("ShuttleApi"), &awslambda.FunctionProps{
		Runtime:     awslambda.Runtime_PROVIDED_AL2023(),
		Handler:     jsii.String("bootstrap"),
		Code:        awslambda.Code_FromAsset(jsii.String("../"), nil),
		MemorySize:  jsii.Number(256),
		Timeout:     awscdk.Duration_Seconds(jsii.Number(15)),
		Environment: &env,
	})

	api := awsapigateway.NewLambdaRestApi(stack, jsii.String("ShuttleApiGateway"), &awsapigateway.LambdaRestApiProps{
		Handler: lambdaFn,
	})

	awscdk.NewCfnOutput(stack, jsii.String("ApiUrl"), &awscdk.CfnOutputProps{Value: api.Url()})

	return stack
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func main() {
	app := awscdk.NewApp(nil)
	NewShuttleStack(app, "ShuttleStack", &ShuttleStackProps{
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
	})
	app.Synth(nil)
}
