package config

// DefaultConfigYAML 内置默认配置
// 生产环境请通过外部 config.yaml 或 LUNGCARE_* 环境变量覆盖，
// 特别是数据库口令、SMTP 账号和各模型服务的 API Key。
var DefaultConfigYAML = []byte(`server:
  port: ":5001"
  mode: "debug"
  base_url: "http://localhost:5001"

database:
  host: "localhost"
  port: "3306"
  username: "lung_user"
  password: ""
  dbname: "lung_ai"
  charset: "utf8mb4"

auth:
  enabled: false
  secret: ""
  expire_hours: 24

email:
  enabled: false
  host: "smtp.gmail.com"
  port: 587
  username: ""
  password: ""
  from: "LungCare AI"

storage:
  upload_dir: "uploads"

inference:
  timeout_seconds: 120
  backends:
    - name: "ResNet50"
      url: "http://localhost:8501/predict"
    - name: "DenseNet201"
      url: "http://localhost:8502/predict"

medgemma:
  base_url: "http://localhost:8000/v1"
  api_key: ""
  model: "google/medgemma-4b-it"
  placeholder_confidence: 0.92
  references: []

report:
  base_url: "https://api.openai.com/v1"
  api_key: ""
  model: "gpt-4.1"
`)
