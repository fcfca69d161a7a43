package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borls/collection-email-worker/internal/domain"
	"github.com/borls/collection-email-worker/pkg/logger"
)

const testAPIKey = "service-key"

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(http.DefaultClient, server.URL, testAPIKey, logger.NewTestLogger(t))
	return client, server
}

func requireAuthHeaders(t *testing.T, r *http.Request) {
	t.Helper()
	assert.Equal(t, testAPIKey, r.Header.Get("apikey"))
	assert.Equal(t, "Bearer "+testAPIKey, r.Header.Get("Authorization"))
}

func TestGetExecution(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requireAuthHeaders(t, r)
			assert.Equal(t, "/rest/v1/collection_executions", r.URL.Path)
			assert.Equal(t, "eq.exec-1", r.URL.Query().Get("id"))
			json.NewEncoder(w).Encode([]map[string]interface{}{{
				"id":             "exec-1",
				"business_id":    "biz-1",
				"status":         "running",
				"attachment_ids": []string{"att-1"},
			}})
		}))

		exec, err := client.GetExecution(context.Background(), "exec-1")
		require.NoError(t, err)
		assert.Equal(t, "exec-1", exec.ID)
		assert.Equal(t, "biz-1", exec.BusinessID)
		assert.Equal(t, []string{"att-1"}, exec.AttachmentIDs)
	})

	t.Run("not found", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]map[string]interface{}{})
		}))

		_, err := client.GetExecution(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrExecutionNotFound)
	})
}

func TestGetTemplate(t *testing.T) {
	t.Run("prefers html content", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/vnd.pgrst.object+json", r.Header.Get("Accept"))
			assert.Equal(t, "id,subject,content_html,content_plain", r.URL.Query().Get("select"))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id":            "tpl-1",
				"subject":       "Recordatorio",
				"content_html":  "<p>hola</p>",
				"content_plain": "hola",
			})
		}))

		tpl, err := client.GetTemplate(context.Background(), "tpl-1")
		require.NoError(t, err)
		assert.Equal(t, "<p>hola</p>", tpl.Content)
		assert.Equal(t, "Recordatorio", tpl.Subject)
	})

	t.Run("falls back to plain content", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id":            "tpl-2",
				"subject":       "Aviso",
				"content_plain": "texto plano",
			})
		}))

		tpl, err := client.GetTemplate(context.Background(), "tpl-2")
		require.NoError(t, err)
		assert.Equal(t, "texto plano", tpl.Content)
	})
}

func TestUpdateClientStatus(t *testing.T) {
	var captured map[string]interface{}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requireAuthHeaders(t, r)
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "return=minimal", r.Header.Get("Prefer"))
		assert.Equal(t, "eq.client-1", r.URL.Query().Get("id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusNoContent)
	}))

	err := client.UpdateClientStatus(context.Background(), "client-1", "sent", map[string]interface{}{
		"message_id": "msg-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "sent", captured["status"])
	assert.Equal(t, map[string]interface{}{"message_id": "msg-1"}, captured["custom_data"])
}

func TestUpdateClientStatusWithoutCustomData(t *testing.T) {
	var captured map[string]interface{}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.UpdateClientStatus(context.Background(), "client-1", "delivered", nil))
	assert.NotContains(t, captured, "custom_data")
}

func TestGetBlacklistedEmailsLowercasesAddresses(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/email_blacklist", r.URL.Path)
		json.NewEncoder(w).Encode([]map[string]string{
			{"email": "Ana@Example.COM"},
			{"email": "otro@example.com"},
		})
	}))

	set, err := client.GetBlacklistedEmails(context.Background(), "biz-1")
	require.NoError(t, err)
	assert.Len(t, set, 2)
	assert.Contains(t, set, "ana@example.com")
	assert.Contains(t, set, "otro@example.com")
}

func TestGetBusinessNameFallsBack(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		assert.Equal(t, "APEX", client.GetBusinessName(context.Background(), "biz-1"))
	})

	t.Run("no rows", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]map[string]string{})
		}))
		assert.Equal(t, "APEX", client.GetBusinessName(context.Background(), "biz-1"))
	})

	t.Run("found", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]map[string]string{{"name": "Ferretería Díaz"}})
		}))
		assert.Equal(t, "Ferretería Díaz", client.GetBusinessName(context.Background(), "biz-1"))
	})
}

func TestBatchRetryCounters(t *testing.T) {
	t.Run("missing row counts as zero", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]map[string]int{})
		}))

		count, err := client.GetBatchRetryCount(context.Background(), "batch-1")
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("increment reads then patches", func(t *testing.T) {
		var patched map[string]interface{}
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				json.NewEncoder(w).Encode([]map[string]int{{"retry_count": 1}})
			case http.MethodPatch:
				require.NoError(t, json.NewDecoder(r.Body).Decode(&patched))
				w.WriteHeader(http.StatusNoContent)
			}
		}))

		count, err := client.IncrementBatchRetryCount(context.Background(), "batch-1")
		require.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.Equal(t, float64(2), patched["retry_count"])
	})
}

func TestMarkBatchAsDLQUpdatesBothTables(t *testing.T) {
	var paths []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "dlq", body["status"])
		assert.Equal(t, "poison batch", body["error_message"])
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.MarkBatchAsDLQ(context.Background(), "batch-1", "poison batch"))
	assert.Equal(t, []string{"/rest/v1/batch_queue_messages", "/rest/v1/execution_batches"}, paths)
}

func TestGetEarliestPendingBatchTime(t *testing.T) {
	t.Run("nothing pending", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/rest/v1/rpc/get_earliest_pending_batch_time", r.URL.Path)
			w.Write([]byte("null"))
		}))

		ts, err := client.GetEarliestPendingBatchTime(context.Background())
		require.NoError(t, err)
		assert.Nil(t, ts)
	})

	t.Run("pending batch", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`"2026-09-01T10:30:00Z"`))
		}))

		ts, err := client.GetEarliestPendingBatchTime(context.Background())
		require.NoError(t, err)
		require.NotNil(t, ts)
		assert.Equal(t, time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC), ts.UTC())
	})
}

func TestSchedulerLock(t *testing.T) {
	var args map[string]interface{}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&args))
		switch r.URL.Path {
		case "/rest/v1/rpc/acquire_scheduler_lock":
			w.Write([]byte("true"))
		case "/rest/v1/rpc/release_scheduler_lock":
			w.Write([]byte("true"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	lock := NewSchedulerLock(client, "worker-1")

	acquired, err := lock.TryAcquire(context.Background(), 300)
	require.NoError(t, err)
	assert.True(t, acquired)
	assert.Equal(t, "worker-1", args["p_worker_id"])
	assert.Equal(t, float64(300), args["p_ttl_seconds"])

	released, err := lock.Release(context.Background())
	require.NoError(t, err)
	assert.True(t, released)
}

func TestSchedulerLockAcquireFailureIsNotAnError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	lock := NewSchedulerLock(client, "worker-1")
	acquired, err := lock.TryAcquire(context.Background(), 300)
	require.NoError(t, err)
	assert.False(t, acquired)
}

func TestExecutionLoggerLogEvent(t *testing.T) {
	var body map[string]interface{}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/execution_audit_logs", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "return=minimal", r.Header.Get("Prefer"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
	}))

	audit := NewExecutionLogger(client, "worker-1")
	err := audit.LogEvent(context.Background(), "exec-1", "batch-1", "PICKED_UP", map[string]interface{}{
		"retry_count": 1,
	})
	require.NoError(t, err)

	assert.Equal(t, "exec-1", body["execution_id"])
	assert.Equal(t, "batch-1", body["batch_id"])
	assert.Equal(t, "PICKED_UP", body["event"])
	assert.Equal(t, "worker-1", body["worker_id"])
	assert.Equal(t, map[string]interface{}{"retry_count": float64(1)}, body["details"])
	assert.NotEmpty(t, body["created_at"])
}

func TestFindClientByMessageID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "eq.msg-1", r.URL.Query().Get("custom_data->>message_id"))
			json.NewEncoder(w).Encode([]map[string]string{{"id": "client-1", "execution_id": "exec-1"}})
		}))

		clientID, executionID, err := client.FindClientByMessageID(context.Background(), "msg-1")
		require.NoError(t, err)
		assert.Equal(t, "client-1", clientID)
		assert.Equal(t, "exec-1", executionID)
	})

	t.Run("not found", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]map[string]string{})
		}))

		_, _, err := client.FindClientByMessageID(context.Background(), "msg-x")
		assert.ErrorIs(t, err, domain.ErrClientNotFound)
	})
}

func TestGetAttachmentsDownloadsObjects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/v1/collection_attachments", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": "att-1", "name": "factura.pdf", "storage_bucket": "attachments", "storage_path": "biz/factura.pdf"},
			{"id": "att-2", "name": "missing.pdf", "storage_bucket": "attachments", "storage_path": "biz/missing.pdf"},
		})
	})
	mux.HandleFunc("/storage/v1/object/authenticated/attachments/biz/factura.pdf", func(w http.ResponseWriter, r *http.Request) {
		requireAuthHeaders(t, r)
		w.Write([]byte("%PDF-1.4 contenido"))
	})
	mux.HandleFunc("/storage/v1/object/authenticated/attachments/biz/missing.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	client, _ := newTestClient(t, mux)

	attachments, err := client.GetAttachments(context.Background(), []string{"att-1", "att-2"})
	require.NoError(t, err)
	require.Len(t, attachments, 2)
	assert.Equal(t, []byte("%PDF-1.4 contenido"), attachments[0].Data)
	assert.Empty(t, attachments[1].Data, "failed download leaves data empty")
}

func TestGetAttachmentsEnforcesSizeLimit(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/v1/collection_attachments", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": "att-1", "name": "grande.pdf", "storage_bucket": "attachments", "storage_path": "biz/grande.pdf"},
		})
	})
	mux.HandleFunc("/storage/v1/object/authenticated/attachments/biz/grande.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 64))
	})

	client, _ := newTestClient(t, mux)
	client.WithAttachmentLimits(16, 10)

	attachments, err := client.GetAttachments(context.Background(), []string{"att-1"})
	require.NoError(t, err)
	require.Len(t, attachments, 1)
	assert.Empty(t, attachments[0].Data)
}

func TestGetAttachmentsEmptyIDs(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	attachments, err := client.GetAttachments(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, attachments)
}

func TestGetClientsByIDsEmpty(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	clients, err := client.GetClientsByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestGetPendingClients(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requireAuthHeaders(t, r)
		assert.Equal(t, "/rest/v1/collection_clients", r.URL.Path)
		assert.Equal(t, "eq.exec-1", r.URL.Query().Get("execution_id"))
		assert.Equal(t, "eq.pending", r.URL.Query().Get("status"))
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": "client-1", "execution_id": "exec-1", "status": "pending"},
		})
	}))

	clients, err := client.GetPendingClients(context.Background(), "exec-1")
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "client-1", clients[0].ID)
}

func TestGetCustomerEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/rest/v1/customers", r.URL.Path)
			assert.Equal(t, "eq.cust-1", r.URL.Query().Get("id"))
			json.NewEncoder(w).Encode([]map[string]interface{}{
				{"email": "pedro@example.com"},
			})
		}))

		email, err := client.GetCustomerEmail(context.Background(), "cust-1")
		require.NoError(t, err)
		assert.Equal(t, "pedro@example.com", email)
	})

	t.Run("no email on file", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]map[string]interface{}{{"email": nil}})
		}))

		email, err := client.GetCustomerEmail(context.Background(), "cust-2")
		require.NoError(t, err)
		assert.Empty(t, email)
	})
}
