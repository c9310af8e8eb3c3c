package config

type ExecutorConfig struct {
	FunctionPrefix string
}

func NewExecutorConfig() *ExecutorConfig {
	return &ExecutorConfig{
		FunctionPrefix: getEnv("EXECUTOR_FUNCTION_PREFIX", "maximizehire"),
	}
}
